package mailer

import "github.com/ethemkurtt/hotel-gateway/pkg/events"

type Service interface {
	SendReservationConfirmed(toEmail, toName string, ev *events.ReservationConfirmedEvent) error
	SendWelcome(toEmail, toName string) error
}
