// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/valueobject"
)

// ClientStatusActive marks a client currently doing business with us.
const ClientStatusActive = "active"

// Client is a customer of the business.
type Client struct {
	ID               uuid.UUID
	Name             string
	Status           string                // "Active"/"Inactive", any casing
	Retainer         valueobject.RawAmount // monthly recurring fee
	NumberOfProjects int
	StartDate        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the client's status is active, ignoring case.
func (c *Client) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(c.Status), ClientStatusActive)
}
