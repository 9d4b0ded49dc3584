package finance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// AnomalyReason says why a record was left out of a total.
type AnomalyReason string

const (
	AnomalyMissingAmount  AnomalyReason = "missing_amount"
	AnomalyNotNumeric     AnomalyReason = "not_numeric"
	AnomalyNegativeAmount AnomalyReason = "negative_amount"
)

// Anomaly is a record excluded from a total because its amount could not be used.
type Anomaly struct {
	Collection string
	RecordID   string
	RawValue   string
	Reason     AnomalyReason
}

// AnomalyIDs returns the "collection/id" key of every anomaly.
func AnomalyIDs(anomalies []Anomaly) []string {
	ids := make([]string, 0, len(anomalies))
	for _, a := range anomalies {
		ids = append(ids, a.Collection+"/"+a.RecordID)
	}
	return ids
}

type anomalyLog struct {
	ctx     context.Context
	entries []Anomaly
}

func newAnomalyLog(ctx context.Context) *anomalyLog {
	return &anomalyLog{ctx: ctx}
}

// amount parses raw as a non-negative decimal. Unusable values are recorded and reported as not ok.
func (l *anomalyLog) amount(collection, id string, raw valueobject.RawAmount) (decimal.Decimal, bool) {
	d, err := raw.NonNegative()
	if err == nil {
		return d, true
	}

	reason := AnomalyNotNumeric
	switch {
	case errors.Is(err, valueobject.ErrEmptyAmount):
		reason = AnomalyMissingAmount
	case errors.Is(err, valueobject.ErrNegativeAmount):
		reason = AnomalyNegativeAmount
	}

	slog.WarnContext(l.ctx, "Excluding record from quarter totals",
		"collection", collection,
		"record_id", id,
		"raw_amount", string(raw),
		"reason", string(reason),
	)

	l.entries = append(l.entries, Anomaly{
		Collection: collection,
		RecordID:   id,
		RawValue:   string(raw),
		Reason:     reason,
	})
	return decimal.Zero, false
}

func (l *anomalyLog) list() []Anomaly {
	return l.entries
}
