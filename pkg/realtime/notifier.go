package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types fanned out to the panel frontends.
const (
	EventNuevoPedido       = "nuevo-pedido"
	EventEstadoActualizado = "estado-actualizado"
	EventPedidoActualizado = "pedido-actualizado"
)

// Event is a realtime notification scoped to a tenant room and, when the
// event concerns a single order, to that order's room as well.
type Event struct {
	Tipo     string          `json:"tipo"`
	LocalID  uuid.UUID       `json:"local_id"`
	PedidoID uuid.UUID       `json:"pedido_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Rooms returns the delivery rooms for the event. Panel clients join
// "local:{id}"; customers tracking a single order join "pedido:{id}".
func (e Event) Rooms() []string {
	rooms := []string{fmt.Sprintf("local:%s", e.LocalID)}
	if e.PedidoID != uuid.Nil {
		rooms = append(rooms, fmt.Sprintf("pedido:%s", e.PedidoID))
	}
	return rooms
}

// Notifier delivers best-effort realtime events. Implementations must never
// block request handling and must swallow delivery failures.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NewEvent builds an event with the payload marshaled to JSON. Marshal
// failures return an event with an empty payload so delivery still happens.
func NewEvent(tipo string, localID, pedidoID uuid.UUID, payload any) Event {
	event := Event{
		Tipo:     tipo,
		LocalID:  localID,
		PedidoID: pedidoID,
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			event.Payload = data
		}
	}
	return event
}

// NoopNotifier discards every event. Used when realtime delivery is not
// configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Event) {}

const defaultPublishTimeout = 10 * time.Second
