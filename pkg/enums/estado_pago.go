package enums

import "fmt"

// EstadoPago tracks whether a payment proof has been reviewed by staff.
type EstadoPago string

const (
	EstadoPagoPendiente  EstadoPago = "pendiente"
	EstadoPagoConfirmado EstadoPago = "confirmado"
	EstadoPagoRechazado  EstadoPago = "rechazado"
)

var validEstadosPago = []EstadoPago{
	EstadoPagoPendiente,
	EstadoPagoConfirmado,
	EstadoPagoRechazado,
}

// String implements fmt.Stringer.
func (e EstadoPago) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EstadoPago.
func (e EstadoPago) IsValid() bool {
	for _, candidate := range validEstadosPago {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEstadoPago converts raw input into an EstadoPago.
func ParseEstadoPago(value string) (EstadoPago, error) {
	for _, candidate := range validEstadosPago {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid estado de pago %q", value)
}

// IsPaymentOutcome reports whether the value is a terminal review outcome.
func (e EstadoPago) IsPaymentOutcome() bool {
	return e == EstadoPagoConfirmado || e == EstadoPagoRechazado
}
