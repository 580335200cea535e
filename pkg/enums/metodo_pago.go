package enums

import "fmt"

// MetodoPago is the payment method declared by the customer at checkout.
type MetodoPago string

const (
	MetodoPagoEfectivo      MetodoPago = "efectivo"
	MetodoPagoTransferencia MetodoPago = "transferencia"
	MetodoPagoMercadoPago   MetodoPago = "mercadopago"
)

var validMetodosPago = []MetodoPago{
	MetodoPagoEfectivo,
	MetodoPagoTransferencia,
	MetodoPagoMercadoPago,
}

// String implements fmt.Stringer.
func (m MetodoPago) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MetodoPago.
func (m MetodoPago) IsValid() bool {
	for _, candidate := range validMetodosPago {
		if candidate == m {
			return true
		}
	}
	return false
}

// RequiresProofReview reports whether staff must confirm the payment before
// the order moves forward. Cash and gateway payments are treated as settled
// on creation; bank transfers wait for a proof check.
func (m MetodoPago) RequiresProofReview() bool {
	return m == MetodoPagoTransferencia
}

// ParseMetodoPago converts raw input into a MetodoPago.
func ParseMetodoPago(value string) (MetodoPago, error) {
	for _, candidate := range validMetodosPago {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid metodo de pago %q", value)
}
