// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time. Use cases never read the system clock
// directly; only entrypoints use it to default a reference date.
type Clock interface {
	Now() time.Time
}
