// Package valueobject contains domain value objects for the back-office system.
package valueobject

// ResultStatus tells callers how far a computed report can be trusted.
type ResultStatus string

const (
	// ResultOK means every record set was read and every record was usable.
	ResultOK ResultStatus = "ok"
	// ResultDegraded means the figures are complete, but some records were excluded as data-quality anomalies.
	ResultDegraded ResultStatus = "degraded"
	// ResultFailed means a record set could not be read; figures are defaults and must be read as "unknown".
	ResultFailed ResultStatus = "failed"
)
