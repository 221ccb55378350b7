package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/ethemkurtt/hotel-gateway/pkg/events"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendReservationConfirmed(toEmail, toName string, ev *events.ReservationConfirmedEvent) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your reservation is confirmed"
	html := fmt.Sprintf(`
		<h2>Reservation confirmed</h2>
		<p>Hi %s,</p>
		<p>Your stay is booked from <strong>%s</strong> to <strong>%s</strong> for %d guest(s).</p>
		<p>Check-in from 14:00, check-out by 12:00.</p>
		<p>Reservation reference: <strong>%s</strong></p>
	`, toName,
		ev.StartDate.Format("2 January 2006"), ev.EndDate.Format("2 January 2006"),
		ev.GuestCount, ev.ReservationID)

	text := fmt.Sprintf("Your stay is booked from %s to %s for %d guest(s). Reference: %s",
		ev.StartDate.Format("2006-01-02"), ev.EndDate.Format("2006-01-02"),
		ev.GuestCount, ev.ReservationID)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendWelcome(toEmail, toName string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Welcome! Your account is ready"
	html := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. You can log in and start booking rooms right away.</p>
	`, toName)

	text := fmt.Sprintf("Welcome, %s! Your account has been created. You can log in now.", toName)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
