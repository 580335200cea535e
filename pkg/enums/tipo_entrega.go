package enums

import "fmt"

// TipoEntrega is the delivery mode chosen by the customer.
type TipoEntrega string

const (
	TipoEntregaTakeaway TipoEntrega = "takeaway"
	TipoEntregaEnvio    TipoEntrega = "envio"
	TipoEntregaDelivery TipoEntrega = "delivery"
)

var validTiposEntrega = []TipoEntrega{
	TipoEntregaTakeaway,
	TipoEntregaEnvio,
	TipoEntregaDelivery,
}

// String implements fmt.Stringer.
func (t TipoEntrega) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TipoEntrega.
func (t TipoEntrega) IsValid() bool {
	for _, candidate := range validTiposEntrega {
		if candidate == t {
			return true
		}
	}
	return false
}

// RequiresAddress reports whether the order must carry a delivery address.
func (t TipoEntrega) RequiresAddress() bool {
	return t == TipoEntregaEnvio || t == TipoEntregaDelivery
}

// ParseTipoEntrega converts raw input into a TipoEntrega.
func ParseTipoEntrega(value string) (TipoEntrega, error) {
	for _, candidate := range validTiposEntrega {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tipo de entrega %q", value)
}
