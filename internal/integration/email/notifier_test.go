package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/application/adapter"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/integration/email/templates"
)

// scriptedSender fails with the queued errors, then succeeds.
type scriptedSender struct {
	failures []error
	sent     []adapter.EmailMessage
	attempts int
}

func (s *scriptedSender) Send(_ context.Context, msg adapter.EmailMessage) (string, error) {
	s.attempts++
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return "", err
	}
	s.sent = append(s.sent, msg)
	return "re_1", nil
}

func temporary() error {
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary", errors.New("503"))
}

func permanent() error {
	return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent", errors.New("422"))
}

func newNotifier(t *testing.T, sender adapter.EmailSender, recipients ...string) *QuarterClosedNotifier {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewQuarterClosedNotifier(sender, renderer, NotifierConfig{
		Recipients:  recipients,
		Currency:    "USD",
		MaxAttempts: 3,
	})
}

func event() adapter.QuarterClosedEvent {
	return adapter.QuarterClosedEvent{
		QuarterID:        "Q1-2025",
		ClosedAt:         time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC),
		ClosedBy:         "owner@example.com",
		TotalRevenue:     decimal.NewFromInt(100000),
		TotalExpenses:    decimal.NewFromInt(20000),
		TotalSalaries:    decimal.NewFromInt(30000),
		CashOnHand:       decimal.NewFromInt(50000),
		WithdrawalAmount: decimal.NewFromInt(10000),
		ExcludedRecords:  2,
	}
}

func TestQuarterClosedNotifier_Renders(t *testing.T) {
	sender := &scriptedSender{}
	n := newNotifier(t, sender, "owner@example.com", "accountant@example.com")

	require.NoError(t, n.PublishQuarterClosed(context.Background(), event()))
	require.Len(t, sender.sent, 2)

	msg := sender.sent[0]
	assert.Equal(t, "Q1-2025 closed", msg.Subject)
	assert.Contains(t, msg.Text, "Cash on hand: 50000.00 USD")
	assert.Contains(t, msg.Text, "2 record(s) were excluded")
	assert.Contains(t, msg.HTML, "50000.00 USD")
	assert.Equal(t, "Q1-2025", msg.Tags["quarter_id"])
	assert.Equal(t, "accountant@example.com", sender.sent[1].To)
}

func TestClassifySendError(t *testing.T) {
	assert.True(t, domainerror.IsPermanentEmailFailure(classifySendError(errors.New("[ERROR]: 422 validation_error"))))
	assert.True(t, domainerror.IsPermanentEmailFailure(classifySendError(errors.New("Forbidden"))))
	assert.False(t, domainerror.IsPermanentEmailFailure(classifySendError(errors.New("503 service unavailable"))))
}

func TestQuarterClosedNotifier_Retries(t *testing.T) {
	t.Run("temporary failures are retried", func(t *testing.T) {
		sender := &scriptedSender{failures: []error{temporary(), temporary()}}
		require.NoError(t, newNotifier(t, sender, "owner@example.com").PublishQuarterClosed(context.Background(), event()))
		assert.Equal(t, 3, sender.attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		sender := &scriptedSender{failures: []error{temporary(), temporary(), temporary()}}
		err := newNotifier(t, sender, "owner@example.com").PublishQuarterClosed(context.Background(), event())
		var emailErr *domainerror.EmailError
		require.True(t, errors.As(err, &emailErr))
		assert.Equal(t, domainerror.ErrCodeTemporaryEmailFailure, emailErr.Code)
		assert.Equal(t, 3, sender.attempts)
	})

	t.Run("permanent failures are not retried", func(t *testing.T) {
		sender := &scriptedSender{failures: []error{permanent()}}
		err := newNotifier(t, sender, "owner@example.com").PublishQuarterClosed(context.Background(), event())
		assert.True(t, domainerror.IsPermanentEmailFailure(err))
		assert.Equal(t, 1, sender.attempts)
	})

	t.Run("no recipients", func(t *testing.T) {
		err := newNotifier(t, &scriptedSender{}).PublishQuarterClosed(context.Background(), event())
		assert.ErrorIs(t, err, domainerror.ErrNoRecipients)
	})
}
