package notify

import (
	"context"
	"fmt"
	"strings"

	"cybertrax/internal/models"
)

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) error { return nil }

// FormatOrderEvent renders an order event as a short plain-text admin message.
func FormatOrderEvent(event *models.OrderEvent) string {
	var b strings.Builder

	switch event.Type {
	case models.OrderEventCreated:
		fmt.Fprintf(&b, "Новая заявка #%d", event.OrderID)
	case models.OrderEventPaid:
		fmt.Fprintf(&b, "Заявка #%d оплачена", event.OrderID)
	case models.OrderEventStatusChanged:
		fmt.Fprintf(&b, "Заявка #%d: статус оплаты %s", event.OrderID, event.PrevStatus)
		if event.Order != nil {
			fmt.Fprintf(&b, " → %s", event.Order.PaymentStatus)
		}
	case models.OrderEventDeleted:
		fmt.Fprintf(&b, "Заявка #%d удалена", event.OrderID)
	default:
		fmt.Fprintf(&b, "%s #%d", event.Type, event.OrderID)
	}

	if o := event.Order; o != nil && event.Type != models.OrderEventDeleted {
		fmt.Fprintf(&b, "\n%s → %s, %s", o.FromCity, o.ToCity, o.StartDate)
		fmt.Fprintf(&b, "\n%s (%s)", o.UserFullName, o.UserPhone)
		if o.CarBrandModel != "" {
			fmt.Fprintf(&b, "\nАвто: %s", o.CarBrandModel)
		}
		fmt.Fprintf(&b, "\nСтоимость: %d ₽ + страховка %d ₽", o.TransportPrice, o.InsurancePrice)
	}

	return b.String()
}
