// Package notify turns reservation events into customer email. It runs as its
// own binary so a slow mail provider never sits in a request path.
package notify

import (
	"encoding/json"

	"github.com/ethemkurtt/hotel-gateway/internal/notify/mailer"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

type Consumer struct {
	bus    events.Subscriber
	mailer mailer.Service
}

func NewConsumer(bus events.Subscriber, m mailer.Service) *Consumer {
	return &Consumer{bus: bus, mailer: m}
}

// Start registers the queue subscriptions. Queue groups make sure only one
// notify instance mails each event.
func (c *Consumer) Start() error {
	if err := c.bus.QueueSubscribe(events.ReservationConfirmed, "notify", c.onReservationConfirmed); err != nil {
		return err
	}
	return c.bus.QueueSubscribe(events.UserRegistered, "notify", c.onUserRegistered)
}

func (c *Consumer) onReservationConfirmed(msg *events.Message) {
	var ev events.ReservationConfirmedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("Malformed reservation event", "error", err, "subject", msg.Subject)
		return
	}
	if ev.UserEmail == "" {
		logger.Warn("Reservation event without email", "reservation_id", ev.ReservationID)
		return
	}

	if err := c.mailer.SendReservationConfirmed(ev.UserEmail, ev.UserName, &ev); err != nil {
		logger.Error("Failed to send confirmation email",
			"error", err, "reservation_id", ev.ReservationID, "to", ev.UserEmail)
		return
	}
	logger.Info("Confirmation email sent", "reservation_id", ev.ReservationID, "to", ev.UserEmail)
}

func (c *Consumer) onUserRegistered(msg *events.Message) {
	var ev events.UserRegisteredEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("Malformed registration event", "error", err, "subject", msg.Subject)
		return
	}

	if err := c.mailer.SendWelcome(ev.Email, ev.FullName); err != nil {
		logger.Error("Failed to send welcome email", "error", err, "to", ev.Email)
		return
	}
	logger.Info("Welcome email sent", "to", ev.Email)
}
