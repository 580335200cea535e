package enums

import "fmt"

// Rol is the closed set of actor roles in the platform.
type Rol string

const (
	RolSuperadmin Rol = "superadmin"
	RolAdmin      Rol = "admin"
	RolStaff      Rol = "staff"
)

var validRoles = []Rol{
	RolSuperadmin,
	RolAdmin,
	RolStaff,
}

// Capability names an action gated by role checks.
type Capability string

const (
	CapManagePedidos     Capability = "manage_pedidos"
	CapManageMenu        Capability = "manage_menu"
	CapManageUsuarios    Capability = "manage_usuarios"
	CapReviewSolicitudes Capability = "review_solicitudes"
)

var capabilitiesByRol = map[Rol]map[Capability]bool{
	RolSuperadmin: {
		CapManagePedidos:     true,
		CapManageMenu:        true,
		CapManageUsuarios:    true,
		CapReviewSolicitudes: true,
	},
	RolAdmin: {
		CapManagePedidos:  true,
		CapManageMenu:     true,
		CapManageUsuarios: true,
	},
	RolStaff: {
		CapManagePedidos: true,
	},
}

// String implements fmt.Stringer.
func (r Rol) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Rol.
func (r Rol) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Can reports whether the role grants the capability.
func (r Rol) Can(capability Capability) bool {
	return capabilitiesByRol[r][capability]
}

// ParseRol converts raw input into a Rol.
func ParseRol(value string) (Rol, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rol %q", value)
}
