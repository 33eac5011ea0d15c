package email

import (
	"context"

	"github.com/loplicat/airport-api-service/internal/kafka"
	"github.com/loplicat/airport-api-service/internal/logging"
)

// Sender delivers order confirmations. The current implementation only
// logs; a real SMTP backend slots in behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	logging.Info("sending order confirmation email",
		"to", event.UserEmail,
		"order_id", event.OrderID,
		"tickets", event.TicketCount,
	)
	return nil
}
