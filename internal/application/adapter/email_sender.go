// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// EmailMessage is one outgoing email. Tags are attached as provider metadata
// so messages can be traced back to the quarter they summarise.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// EmailSender delivers emails through an external provider.
type EmailSender interface {
	// Send returns the provider's message id.
	Send(ctx context.Context, msg EmailMessage) (string, error)
}
