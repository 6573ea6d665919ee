package domain

import (
	"errors"
	"time"
)

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal.
var validTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimPending: {ClaimApproved, ClaimRejected},
}

var ErrInvalidTransition = errors.New("invalid claim status transition")
var ErrClaimNotFound = errors.New("claim not found")
var ErrAlreadyClaimed = errors.New("deal already claimed")
var ErrClaimInFlight = errors.New("claim already in progress")
var ErrVerificationRequired = errors.New("deal requires a verified account")
var ErrUnauthenticated = errors.New("authentication required")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s ClaimStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Claim is a user's attempt to redeem a deal. Claims are append-only: at most
// one exists per (user, deal) pair, and status changes are in-place updates
// that never reorder the sequence.
type Claim struct {
	ID         string      `json:"id" bson:"_id"`
	DealID     string      `json:"deal_id" bson:"deal_id"`
	UserID     string      `json:"user_id" bson:"user_id"`
	Status     ClaimStatus `json:"status" bson:"status"`
	ClaimedAt  time.Time   `json:"claimed_at" bson:"claimed_at"`
	ApprovedAt *time.Time  `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
}

// ClaimedDeal is a claim joined with its resolved deal. Derived view, never
// stored.
type ClaimedDeal struct {
	Claim Claim `json:"claim"`
	Deal  Deal  `json:"deal"`
}
