package email

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/backoffice/backend/internal/application/adapter"
	domainerror "github.com/backoffice/backend/internal/domain/error"
)

// permanentMarkers identify provider errors that will fail the same way on retry.
var permanentMarkers = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "bad request"}

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new Resend client. baseURL overrides the Resend
// API endpoint when non-empty.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

// Send delivers msg and classifies failures as permanent or temporary.
func (c *ResendClient) Send(ctx context.Context, msg adapter.EmailMessage) (string, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		Tags:    resendTags(msg.Tags),
	})
	if err != nil {
		return "", classifySendError(err)
	}
	return resp.Id, nil
}

func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]resend.Tag, 0, len(names))
	for _, name := range names {
		out = append(out, resend.Tag{Name: name, Value: tags[name]})
	}
	return out
}

func classifySendError(err error) error {
	text := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(text, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent email failure", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
}

var _ adapter.EmailSender = (*ResendClient)(nil)
