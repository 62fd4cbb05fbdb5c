package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/config"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/events"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/mail"
)

const (
	resetSubject      = "Alumni Connect - Password Reset Request"
	resetExpiryLayout = "2006-01-02 15:04 MST"
)

// NotificationService turns domain events into outgoing mail.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
	from       string
	resetURL   string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger, smtp config.SMTPConfig, app config.AppConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		from:       smtp.From,
		resetURL:   app.ResetURL,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
}

// handlePasswordResetRequested never returns the send error: the requester
// already got a uniform acknowledgement.
func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		n.logger.Error("unexpected payload", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID))
		return nil
	}

	msg := mail.Message{
		From:    n.from,
		To:      payload.Email,
		Subject: resetSubject,
		Body:    n.resetBody(payload.Name, payload.Token, payload.ExpiresAt),
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Error("password reset email failed", zap.String("to", payload.Email), zap.Error(err))
		return nil
	}
	n.logger.Info("password reset email sent", zap.String("to", payload.Email))
	return nil
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered",
		zap.String("user_id", payload.UserID),
		zap.String("role", payload.Role),
		zap.String("source", payload.Source))
	return nil
}

func (n *NotificationService) resetBody(name, token string, expiresAt time.Time) string {
	expiry := ""
	if !expiresAt.IsZero() {
		expiry = "This link expires at " + expiresAt.UTC().Format(resetExpiryLayout) + ".\n\n"
	}
	return fmt.Sprintf("Hello %s,\n\n"+
		"You have requested to reset your password. Please click the link below to proceed:\n"+
		"%s\n\n"+
		"%s"+
		"If you did not request this, please ignore this email.\n\n"+
		"Best regards,\nThe Alumni Connect Team", name, resetLink(n.resetURL, token), expiry)
}

func resetLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
