package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/config"
)

// Message is a plaintext email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSender returns an SMTP sender, or a logging sender when no SMTP host
// is configured.
func NewSender(cfg config.SMTPConfig, logger *zap.Logger) Sender {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not provided; emails will only be logged")
		return &LogSender{logger: logger}
	}
	return &SMTPSender{cfg: cfg}
}

// Send dials the relay and sends msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(tlsPolicy(s.cfg.TLSPolicy)),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender records messages in the log instead of sending them.
type LogSender struct {
	logger *zap.Logger
}

// Send logs the envelope of msg. The body is omitted since it may carry
// reset links.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if _, err := buildMessage(msg); err != nil {
		return err
	}
	s.logger.Info("email not sent (no SMTP relay)",
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

func tlsPolicy(name string) gomail.TLSPolicy {
	switch name {
	case "mandatory":
		return gomail.TLSMandatory
	case "none":
		return gomail.NoTLS
	default:
		return gomail.TLSOpportunistic
	}
}
