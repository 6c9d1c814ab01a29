package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

// DealClosedEmailData feeds the deal_closed template.
type DealClosedEmailData struct {
	baseEmailData
	DealID         string
	Outcome        string
	PriceFormatted string
}

// DealReopenedEmailData feeds the deal_reopened template.
type DealReopenedEmailData struct {
	baseEmailData
	DealID         string
	PreviousStatus string
}

// FollowUpDueEmailData feeds the follow_up_due template.
type FollowUpDueEmailData struct {
	baseEmailData
	DealID     string
	NextAction string
	DueDate    string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyEUR(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}
