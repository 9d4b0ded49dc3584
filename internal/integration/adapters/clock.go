package adapters

import (
	"time"

	"github.com/backoffice/backend/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock backed by time.Now, in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
