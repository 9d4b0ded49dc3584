// Package templates renders the email bodies sent by the back office.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// QuarterClosed is the name of the quarter-closed summary template.
const QuarterClosed = "quarter_closed"

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer executes a pair of HTML and plain-text templates sharing one name.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render returns both bodies of the named template. Both variants must exist.
func (r *Renderer) Render(name string, data any) (string, string, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s.txt: %w", name, err)
	}
	return html.String(), text.String(), nil
}

// QuarterClosedData fills the quarter-closed summary. Amounts are preformatted with two decimals.
type QuarterClosedData struct {
	QuarterID        string
	ClosedAt         string
	ClosedBy         string
	Currency         string
	TotalRevenue     string
	TotalExpenses    string
	TotalSalaries    string
	CashOnHand       string
	WithdrawalAmount string
	ExcludedRecords  int
}
