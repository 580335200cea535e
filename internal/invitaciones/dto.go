package invitaciones

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/internal/users"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// IssueInput carries the data needed to mint a new invitation.
type IssueInput struct {
	Email         string
	Rol           enums.Rol
	SolicitudID   *uuid.UUID
	NombreNegocio string
}

// ValidationResult is returned for a token that is still redeemable.
type ValidationResult struct {
	Email    string    `json:"email"`
	Rol      enums.Rol `json:"rol"`
	ExpiraEn time.Time `json:"expira_en"`
}

// LocalInput is the tenant the invitee is registering.
type LocalInput struct {
	Nombre      string
	Slug        string
	Descripcion *string
	Direccion   *string
	Telefono    *string
}

// UsuarioInput is the admin account created alongside the local.
type UsuarioInput struct {
	Nombre   string
	Password string
}

// ConsumeInput redeems a token into a tenant plus its first admin user.
type ConsumeInput struct {
	Token   string
	Local   LocalInput
	Usuario UsuarioInput
}

// ConsumeResult reports what the redemption created.
type ConsumeResult struct {
	LocalID uuid.UUID         `json:"local_id"`
	Slug    string            `json:"slug"`
	Usuario *users.UsuarioDTO `json:"usuario"`
}
