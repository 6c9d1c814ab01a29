package notification

import (
	"strings"
	"testing"
)

func TestRenderDealClosedTemplate(t *testing.T) {
	data := DealClosedEmailData{
		DealID:         "9f2c1a7b",
		Outcome:        "closed_won",
		PriceFormatted: formatCurrencyEUR(28500),
	}
	data.Title = "Deal closed"
	data.Heading = "Deal won"

	html, err := renderEmailTemplate("deal_closed.html", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Deal won", "9f2c1a7b", "closed_won", "€28500.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered mail missing %q", want)
		}
	}
}

func TestRenderFollowUpTemplateOmitsEmptyFields(t *testing.T) {
	data := FollowUpDueEmailData{DealID: "9f2c1a7b"}
	data.Title = "Follow-up due"
	data.Heading = "Follow-up due"

	html, err := renderEmailTemplate("follow_up_due.html", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "Planned action") {
		t.Errorf("rendered mail mentions planned action without one set")
	}
	if strings.Contains(html, "since") {
		t.Errorf("rendered mail mentions due date without one set")
	}
}

func TestRenderAllTemplates(t *testing.T) {
	cases := []struct {
		template string
		data     any
	}{
		{"deal_closed.html", DealClosedEmailData{baseEmailData: baseEmailData{Title: "t", Heading: "h"}, DealID: "d", Outcome: "closed_lost", PriceFormatted: "€0.00"}},
		{"deal_reopened.html", DealReopenedEmailData{baseEmailData: baseEmailData{Title: "t", Heading: "h"}, DealID: "d", PreviousStatus: "closed_won"}},
		{"follow_up_due.html", FollowUpDueEmailData{baseEmailData: baseEmailData{Title: "t", Heading: "h"}, DealID: "d", NextAction: "call", DueDate: "2026-09-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			html, err := renderEmailTemplate(tc.template, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(html, "<html>") {
				t.Errorf("rendered mail missing base layout")
			}
		})
	}
}
