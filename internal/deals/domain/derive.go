package domain

import "time"

// Read-time scheduling metrics. Like the financial derivation these are
// presentation-only and never persisted.

// IsOverdue reports whether an open deal has slipped past its expected
// close date. Closed deals are never overdue.
func IsOverdue(d Deal, now time.Time) bool {
	if !d.Status.IsOpen() || d.ExpectedCloseDate == nil {
		return false
	}
	return d.ExpectedCloseDate.Before(now)
}

// DaysOpen returns how many whole days the deal has been (or was) in the
// pipeline: creation until now for open deals, creation until close for
// closed ones.
func DaysOpen(d Deal, now time.Time) int {
	end := now
	if d.Status.IsTerminal() && d.ClosedAt != nil {
		end = *d.ClosedAt
	}
	days := int(end.Sub(d.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
