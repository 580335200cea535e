package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
	"github.com/smoralesdev/cartaqr-backend/pkg/metrics"
)

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// PubSubNotifier publishes events to a Pub/Sub topic that the realtime
// gateway subscribes to. Delivery is fire and forget: failures are logged
// and counted, never surfaced to the caller.
type PubSubNotifier struct {
	pub     publisher
	logg    *logger.Logger
	metrics *metrics.NotifierMetrics
}

// NewPubSubNotifier wraps the events topic publisher.
func NewPubSubNotifier(pub *gcppubsub.Publisher, logg *logger.Logger, m *metrics.NotifierMetrics) (*PubSubNotifier, error) {
	if pub == nil {
		return nil, errors.New("events publisher is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &PubSubNotifier{
		pub:     &gcpPublisher{Publisher: pub},
		logg:    logg,
		metrics: m,
	}, nil
}

// Notify publishes the event asynchronously.
func (n *PubSubNotifier) Notify(ctx context.Context, event Event) {
	if n == nil || n.pub == nil {
		return
	}
	// Detach from the request context so in-flight publishes survive the
	// response being written.
	fields := map[string]any{
		"event_type": event.Tipo,
		"local_id":   event.LocalID.String(),
	}
	detached := n.logg.WithFields(context.WithoutCancel(ctx), fields)

	go n.publish(detached, event)
}

func (n *PubSubNotifier) publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		n.metrics.IncFailure(event.Tipo)
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "realtime event marshal failed")
		return
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type": event.Tipo,
			"local_id":   event.LocalID.String(),
			"rooms":      strings.Join(event.Rooms(), ","),
		},
	}
	if event.PedidoID != uuid.Nil {
		msg.Attributes["pedido_id"] = event.PedidoID.String()
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()

	start := time.Now()
	result := n.pub.Publish(publishCtx, msg)
	if result == nil {
		n.metrics.IncFailure(event.Tipo)
		n.logg.Warn(ctx, "realtime publisher returned nil result")
		return
	}
	if _, err := result.Get(publishCtx); err != nil {
		n.metrics.IncFailure(event.Tipo)
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "realtime event publish failed")
		return
	}
	n.metrics.ObserveDuration(event.Tipo, time.Since(start))
	n.metrics.IncSuccess(event.Tipo)
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
