package events

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/application/adapter"
)

// Fanout delivers each event to every publisher, even when some fail.
type Fanout []adapter.QuarterEventPublisher

// PublishQuarterClosed implements adapter.QuarterEventPublisher.
// The returned error joins every publisher's failure.
func (f Fanout) PublishQuarterClosed(ctx context.Context, event adapter.QuarterClosedEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishQuarterClosed(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
