package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cybertrax/internal/models"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/notify"
)

// EventPublisher receives order lifecycle events from the order service.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.OrderEvent)
}

// HubPublisher is the realtime side of event delivery, implemented by the
// websocket hub.
type HubPublisher interface {
	PublishOrderEvent(eventType string, orderID int64, data map[string]interface{})
}

const notifyTimeout = 10 * time.Second

// OrderEventBus delivers order events to admin websocket clients and to the
// admin chat. With a broker configured, websocket delivery goes through the
// broker channel so every instance's clients see the event; the chat message
// is sent once, by the instance that published it.
type OrderEventBus struct {
	hub      HubPublisher
	notifier notify.Notifier
	broker   EventBroker
	channel  string
	logger   *logger.Logger
	wg       sync.WaitGroup
}

func NewOrderEventBus(hub HubPublisher, notifier notify.Notifier, broker EventBroker, channel string, log *logger.Logger) *OrderEventBus {
	return &OrderEventBus{
		hub:      hub,
		notifier: notifier,
		broker:   broker,
		channel:  channel,
		logger:   log,
	}
}

func (b *OrderEventBus) Publish(ctx context.Context, event *models.OrderEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	b.logger.LogOrderEvent(event.OrderID, string(event.Type), logger.Fields{
		"prev_status": event.PrevStatus,
	})

	b.sendNotification(event)

	if b.broker != nil {
		err := b.broker.Publish(ctx, b.channel, event)
		if err == nil {
			return
		}
		b.logger.WithError(err).WithOrderID(event.OrderID).Warn("Failed to publish order event, delivering locally")
	}

	b.fanOut(event)
}

// HandleMessage decodes an event received from the broker channel.
func (b *OrderEventBus) HandleMessage(payload []byte) {
	var event models.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		b.logger.WithError(err).Warn("Dropping malformed order event")
		return
	}
	b.fanOut(&event)
}

// Wait blocks until pending chat notifications have been sent.
func (b *OrderEventBus) Wait() {
	b.wg.Wait()
}

func (b *OrderEventBus) fanOut(event *models.OrderEvent) {
	if b.hub == nil {
		return
	}

	data := map[string]interface{}{
		"order_id":    event.OrderID,
		"occurred_at": event.OccurredAt,
	}
	if event.Order != nil {
		data["order"] = event.Order
	}
	if event.PrevStatus != "" {
		data["prev_status"] = event.PrevStatus
	}

	b.hub.PublishOrderEvent(string(event.Type), event.OrderID, data)
}

func (b *OrderEventBus) sendNotification(event *models.OrderEvent) {
	if b.notifier == nil {
		return
	}

	text := notify.FormatOrderEvent(event)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := b.notifier.Notify(ctx, text); err != nil {
			b.logger.WithError(err).WithOrderID(event.OrderID).Warn("Failed to send admin notification")
		}
	}()
}
