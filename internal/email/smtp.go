package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"seller_portal_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendBookingConfirmation sends the booking confirmation email.
func (s *SMTPSender) SendBookingConfirmation(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	content, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:    "Consultation booked",
			Heading:  "Your consultation is booked",
			CTALabel: "Join the meeting",
			CTAURL:   joinURL,
		},
		InviteeName: inviteeName,
		MeetingTime: start.Format(meetingTimeFormat),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingConfirmation, content)
}

// SendConsultationReminder sends the 24-hour reminder email.
func (s *SMTPSender) SendConsultationReminder(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	content, err := renderEmailTemplate("booking_reminder.html", consultationReminderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Consultation reminder",
			Heading:  "See you tomorrow",
			CTALabel: "Join the meeting",
			CTAURL:   joinURL,
		},
		InviteeName: inviteeName,
		MeetingTime: start.Format(meetingTimeFormat),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectConsultationReminder, content)
}

// Compile-time checks that both senders implement Sender
var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*NoopSender)(nil)
)
