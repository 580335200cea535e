package enums

import "fmt"

// EstadoSolicitud tracks the review state of a business signup request.
type EstadoSolicitud string

const (
	EstadoSolicitudPendiente EstadoSolicitud = "pendiente"
	EstadoSolicitudAceptada  EstadoSolicitud = "aceptada"
	EstadoSolicitudRechazada EstadoSolicitud = "rechazada"
)

var validEstadosSolicitud = []EstadoSolicitud{
	EstadoSolicitudPendiente,
	EstadoSolicitudAceptada,
	EstadoSolicitudRechazada,
}

// String implements fmt.Stringer.
func (e EstadoSolicitud) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EstadoSolicitud.
func (e EstadoSolicitud) IsValid() bool {
	for _, candidate := range validEstadosSolicitud {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEstadoSolicitud converts raw input into an EstadoSolicitud.
func ParseEstadoSolicitud(value string) (EstadoSolicitud, error) {
	for _, candidate := range validEstadosSolicitud {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid estado de solicitud %q", value)
}
