// Package domain provides core business rules for the deal pipeline:
// the stage state machine, financial derivation, and read-time metrics.
package domain

import "fmt"

// DealStatus is a deal's position in the sales pipeline.
type DealStatus string

const (
	// StatusNegotiation is the initial stage of every deal and the stage a
	// reopened deal returns to.
	StatusNegotiation DealStatus = "negotiation"
	// StatusContract covers paperwork after a price has been agreed.
	StatusContract DealStatus = "contract"
	// StatusFinancing covers loan/lease arrangement before delivery.
	StatusFinancing DealStatus = "financing"
	// StatusClosedWon is terminal: the vehicle was sold.
	StatusClosedWon DealStatus = "closed_won"
	// StatusClosedLost is terminal: the customer walked away.
	StatusClosedLost DealStatus = "closed_lost"
)

// ReopenedProbability is the confidence score assigned when a closed deal is
// pulled back into negotiation.
const ReopenedProbability = 60

// stageTransitions is the legal-move adjacency of the pipeline. Open stages
// may step forward, step back one stage, or close either way; terminal stages
// have no outbound edges. Reopening is deliberately not an edge here: it is a
// privileged operation that always lands on negotiation.
var stageTransitions = map[DealStatus][]DealStatus{
	StatusNegotiation: {StatusContract, StatusClosedWon, StatusClosedLost},
	StatusContract:    {StatusNegotiation, StatusFinancing, StatusClosedWon, StatusClosedLost},
	StatusFinancing:   {StatusContract, StatusClosedWon, StatusClosedLost},
	StatusClosedWon:   {},
	StatusClosedLost:  {},
}

func init() {
	if err := validateTransitionGraph(); err != nil {
		panic(err)
	}
}

// validateTransitionGraph checks the adjacency table for structural sanity:
// every vertex and edge names a known status, no self-edges, and terminal
// statuses have no outbound edges.
func validateTransitionGraph() error {
	for _, status := range AllStatuses() {
		if _, ok := stageTransitions[status]; !ok {
			return fmt.Errorf("transition graph missing status %q", status)
		}
	}
	for from, targets := range stageTransitions {
		if !IsKnownStatus(from) {
			return fmt.Errorf("transition graph has unknown status %q", from)
		}
		if from.IsTerminal() && len(targets) > 0 {
			return fmt.Errorf("terminal status %q must have no outbound transitions", from)
		}
		for _, to := range targets {
			if !IsKnownStatus(to) {
				return fmt.Errorf("transition %q -> %q targets unknown status", from, to)
			}
			if to == from {
				return fmt.Errorf("transition graph has self-edge on %q", from)
			}
		}
	}
	return nil
}

// AllStatuses returns every status in the pipeline enumeration.
func AllStatuses() []DealStatus {
	return []DealStatus{
		StatusNegotiation,
		StatusContract,
		StatusFinancing,
		StatusClosedWon,
		StatusClosedLost,
	}
}

// OpenStatuses returns the non-terminal stages in board order.
func OpenStatuses() []DealStatus {
	return []DealStatus{StatusNegotiation, StatusContract, StatusFinancing}
}

// IsKnownStatus reports whether the value is part of the status enumeration.
func IsKnownStatus(status DealStatus) bool {
	switch status {
	case StatusNegotiation, StatusContract, StatusFinancing, StatusClosedWon, StatusClosedLost:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a DealStatus.
func ParseStatus(raw string) (DealStatus, error) {
	status := DealStatus(raw)
	if !IsKnownStatus(status) {
		return "", fmt.Errorf("unknown deal status %q", raw)
	}
	return status, nil
}

// IsTerminal reports whether the status is one of the two closed outcomes.
func (s DealStatus) IsTerminal() bool {
	return s == StatusClosedWon || s == StatusClosedLost
}

// IsOpen reports whether the status is a live pipeline stage.
func (s DealStatus) IsOpen() bool {
	return IsKnownStatus(s) && !s.IsTerminal()
}

// CanTransitionTo reports whether a deal in status s may move to target via a
// regular stage update. Self-transitions and moves not present in the
// adjacency table are rejected.
func (s DealStatus) CanTransitionTo(target DealStatus) bool {
	if target == s {
		return false
	}
	for _, allowed := range stageTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
