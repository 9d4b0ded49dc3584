// Package email provides email sending functionality.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/backoffice/backend/internal/application/adapter"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/email/templates"
)

// NotifierConfig holds configuration for the quarter-closed notifier.
type NotifierConfig struct {
	Recipients  []string
	Currency    string
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultNotifierConfig returns the default notifier configuration.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Currency:    "USD",
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
	}
}

// QuarterClosedNotifier emails a summary of every closed quarter to the configured recipients.
type QuarterClosedNotifier struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   NotifierConfig
}

// NewQuarterClosedNotifier creates a new quarter-closed notifier.
func NewQuarterClosedNotifier(sender adapter.EmailSender, renderer *templates.Renderer, config NotifierConfig) *QuarterClosedNotifier {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &QuarterClosedNotifier{
		sender:   sender,
		renderer: renderer,
		config:   config,
	}
}

// PublishQuarterClosed implements adapter.QuarterEventPublisher.
func (n *QuarterClosedNotifier) PublishQuarterClosed(ctx context.Context, event adapter.QuarterClosedEvent) error {
	if len(n.config.Recipients) == 0 {
		return domainerror.NewEmailError(
			domainerror.ErrCodeNoRecipients,
			"quarter closed summary has no recipients",
			domainerror.ErrNoRecipients,
		)
	}

	html, text, err := n.renderer.Render(templates.QuarterClosed, templates.QuarterClosedData{
		QuarterID:        event.QuarterID,
		ClosedAt:         event.ClosedAt.Format(time.RFC1123),
		ClosedBy:         event.ClosedBy,
		Currency:         n.config.Currency,
		TotalRevenue:     event.TotalRevenue.StringFixed(2),
		TotalExpenses:    event.TotalExpenses.StringFixed(2),
		TotalSalaries:    event.TotalSalaries.StringFixed(2),
		CashOnHand:       event.CashOnHand.StringFixed(2),
		WithdrawalAmount: event.WithdrawalAmount.StringFixed(2),
		ExcludedRecords:  event.ExcludedRecords,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render quarter closed summary",
			err,
		)
	}

	var firstErr error
	for _, to := range n.config.Recipients {
		msg := adapter.EmailMessage{
			To:      to,
			Subject: event.QuarterID + " closed",
			HTML:    html,
			Text:    text,
			Tags:    map[string]string{"quarter_id": event.QuarterID, "event": "quarter_closed"},
		}
		if err := n.send(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// send delivers one email, retrying temporary failures up to MaxAttempts.
func (n *QuarterClosedNotifier) send(ctx context.Context, msg adapter.EmailMessage) error {
	logger := slog.With("recipient", msg.To, "subject", msg.Subject)

	var err error
	for attempt := 1; attempt <= n.config.MaxAttempts; attempt++ {
		var messageID string
		messageID, err = n.sender.Send(ctx, msg)
		if err == nil {
			logger.InfoContext(ctx, "Email sent successfully", "message_id", messageID, "attempts", attempt)
			return nil
		}

		if domainerror.IsPermanentEmailFailure(err) {
			logger.WarnContext(ctx, "Email permanently failed", "error", err, "attempts", attempt)
			return err
		}
		if attempt == n.config.MaxAttempts {
			break
		}

		logger.InfoContext(ctx, "Email scheduled for retry", "error", err, "attempts", attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.config.RetryDelay):
		}
	}

	logger.WarnContext(ctx, "Email failed after retries", "error", err, "attempts", n.config.MaxAttempts)
	return err
}

var _ adapter.QuarterEventPublisher = (*QuarterClosedNotifier)(nil)
