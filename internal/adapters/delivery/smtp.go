package delivery

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Default organizer SMTP constants.
const (
	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = "587"
)

// sendMailFunc matches net/smtp.SendMail; injectable for tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// OrganizerSMTP sends mail with the organizer's own SMTP credentials.
type OrganizerSMTP struct {
	email    string
	password string
	host     string
	port     string
	send     sendMailFunc
}

// SMTPOption applies a configuration option to the OrganizerSMTP sender.
type SMTPOption func(*OrganizerSMTP)

// WithSMTPHost overrides the SMTP host and port.
func WithSMTPHost(host, port string) SMTPOption {
	return func(s *OrganizerSMTP) {
		if host != "" {
			s.host = host
		}
		if port != "" {
			s.port = port
		}
	}
}

// WithSendMail injects the wire-level send function for tests.
func WithSendMail(fn sendMailFunc) SMTPOption {
	return func(s *OrganizerSMTP) {
		if fn != nil {
			s.send = fn
		}
	}
}

// NewOrganizerSMTP creates a sender bound to one organizer's credentials.
func NewOrganizerSMTP(email, password string, opts ...SMTPOption) *OrganizerSMTP {
	s := &OrganizerSMTP{
		email:    email,
		password: password,
		host:     defaultSMTPHost,
		port:     defaultSMTPPort,
		send:     smtp.SendMail,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind implements Sender.
func (*OrganizerSMTP) Kind() string { return "organizer-smtp" }

// Send implements Sender.
func (s *OrganizerSMTP) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(s.password) == "" {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, ErrNoCredentials)
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: empty recipient", ErrDeliveryFailed)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	msg := strings.Join([]string{
		"From: " + s.email,
		"To: " + to,
		"Subject: " + subject,
		"Reply-To: " + from,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.email, s.password, s.host)
	if err := s.send(s.host+":"+s.port, auth, s.email, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}
