package enums

import "fmt"

// EstadoPedido tracks the lifecycle of a customer order.
type EstadoPedido string

const (
	EstadoPedidoPendiente  EstadoPedido = "pendiente"
	EstadoPedidoPreparando EstadoPedido = "preparando"
	EstadoPedidoListo      EstadoPedido = "listo"
	EstadoPedidoEntregado  EstadoPedido = "entregado"
	EstadoPedidoCancelado  EstadoPedido = "cancelado"
)

// estadoPedidoEnPreparacion is the legacy spelling still sent by older panels.
const estadoPedidoEnPreparacion = "en_preparacion"

var validEstadosPedido = []EstadoPedido{
	EstadoPedidoPendiente,
	EstadoPedidoPreparando,
	EstadoPedidoListo,
	EstadoPedidoEntregado,
	EstadoPedidoCancelado,
}

// String implements fmt.Stringer.
func (e EstadoPedido) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EstadoPedido.
func (e EstadoPedido) IsValid() bool {
	for _, candidate := range validEstadosPedido {
		if candidate == e {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are expected.
func (e EstadoPedido) IsTerminal() bool {
	return e == EstadoPedidoEntregado || e == EstadoPedidoCancelado
}

// ParseEstadoPedido converts raw input into an EstadoPedido. The legacy
// "en_preparacion" spelling normalizes to "preparando".
func ParseEstadoPedido(value string) (EstadoPedido, error) {
	if value == estadoPedidoEnPreparacion {
		return EstadoPedidoPreparando, nil
	}
	for _, candidate := range validEstadosPedido {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid estado %q", value)
}
