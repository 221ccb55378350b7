package mailer

import (
	"fmt"

	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

// DevMailer prints emails to the log instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendReservationConfirmed(toEmail, toName string, ev *events.ReservationConfirmedEvent) error {
	logger.Info("[DEV MAIL] Reservation confirmation",
		"to", toEmail,
		"name", toName,
		"reservation_id", ev.ReservationID,
		"start", ev.StartDate,
		"end", ev.EndDate,
	)

	fmt.Printf("\n"+
		"-----------------------------------------------------------------\n"+
		"RESERVATION CONFIRMATION (DEV MODE)\n"+
		"-----------------------------------------------------------------\n"+
		"To: %s (%s)\n"+
		"Subject: Your reservation is confirmed\n"+
		"\n"+
		"Reservation: %s\n"+
		"Dates: %s - %s, %d guest(s)\n"+
		"-----------------------------------------------------------------\n\n",
		toEmail, toName, ev.ReservationID,
		ev.StartDate.Format("2006-01-02"), ev.EndDate.Format("2006-01-02"), ev.GuestCount)

	return nil
}

func (d *DevMailer) SendWelcome(toEmail, toName string) error {
	logger.Info("[DEV MAIL] Welcome email", "to", toEmail, "name", toName)

	fmt.Printf("\n"+
		"-----------------------------------------------------------------\n"+
		"WELCOME EMAIL (DEV MODE)\n"+
		"-----------------------------------------------------------------\n"+
		"To: %s (%s)\n"+
		"Subject: Welcome! Your account is ready\n"+
		"-----------------------------------------------------------------\n\n",
		toEmail, toName)

	return nil
}
