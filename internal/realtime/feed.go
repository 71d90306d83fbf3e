package realtime

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kessal001/prenotazione-sale/internal/domain"
)

// Deliverer is the consuming side of the queue. Satisfied by
// mq.Consumer.
type Deliverer interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

// Feed bridges the RabbitMQ change-event queue into the local Hub.
// Every instance consumes its own queue bound to the prenotazioni
// exchange, so mutations made anywhere reach every connected client.
type Feed struct {
	cons Deliverer
	hub  *Hub
	log  *zap.Logger
}

func NewFeed(cons Deliverer, hub *Hub, log *zap.Logger) *Feed {
	return &Feed{cons: cons, hub: hub, log: log}
}

func (f *Feed) Run(ctx context.Context) error {
	msgs, err := f.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			var ev domain.ChangeEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				f.log.Warn("malformed change event", zap.String("key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			if ev.EventType == "" {
				f.log.Warn("change event without type", zap.String("key", d.RoutingKey))
				_ = d.Ack(false)
				continue
			}
			f.hub.Publish(ev)
			_ = d.Ack(false)
		}
	}()
	return nil
}
