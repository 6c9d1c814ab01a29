package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from DealStatus
		to   DealStatus
		want bool
	}{
		{StatusNegotiation, StatusContract, true},
		{StatusNegotiation, StatusClosedWon, true},
		{StatusNegotiation, StatusClosedLost, true},
		{StatusNegotiation, StatusFinancing, false},
		{StatusNegotiation, StatusNegotiation, false},

		{StatusContract, StatusNegotiation, true},
		{StatusContract, StatusFinancing, true},
		{StatusContract, StatusClosedWon, true},
		{StatusContract, StatusClosedLost, true},
		{StatusContract, StatusContract, false},

		{StatusFinancing, StatusContract, true},
		{StatusFinancing, StatusClosedWon, true},
		{StatusFinancing, StatusClosedLost, true},
		{StatusFinancing, StatusNegotiation, false},

		// Terminal stages have no outbound edges; reopen is not a transition.
		{StatusClosedWon, StatusNegotiation, false},
		{StatusClosedWon, StatusClosedLost, false},
		{StatusClosedLost, StatusNegotiation, false},
		{StatusClosedLost, StatusContract, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionGraphIsStructurallySane(t *testing.T) {
	if err := validateTransitionGraph(); err != nil {
		t.Fatalf("transition graph invalid: %v", err)
	}
}

func TestEveryOpenStatusCanReachBothOutcomes(t *testing.T) {
	for _, status := range OpenStatuses() {
		if !status.CanTransitionTo(StatusClosedWon) {
			t.Errorf("open status %s cannot close won", status)
		}
		if !status.CanTransitionTo(StatusClosedLost) {
			t.Errorf("open status %s cannot close lost", status)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		parsed, err := ParseStatus(string(status))
		if err != nil {
			t.Fatalf("ParseStatus(%s): %v", status, err)
		}
		if parsed != status {
			t.Fatalf("ParseStatus(%s) = %s", status, parsed)
		}
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestTerminalAndOpenPredicates(t *testing.T) {
	if !StatusClosedWon.IsTerminal() || !StatusClosedLost.IsTerminal() {
		t.Fatal("closed statuses must be terminal")
	}
	for _, status := range OpenStatuses() {
		if status.IsTerminal() {
			t.Errorf("%s must not be terminal", status)
		}
		if !status.IsOpen() {
			t.Errorf("%s must be open", status)
		}
	}
	if DealStatus("garbage").IsOpen() {
		t.Fatal("unknown status must not count as open")
	}
}
