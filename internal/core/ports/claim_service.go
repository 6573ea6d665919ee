package ports

import (
	"context"
	"time"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

// ReviewTask is the unit of work handed to the review scheduler: decide the
// claim's terminal status once DueAt has passed.
type ReviewTask struct {
	ClaimID string
	DueAt   time.Time
}

// ClaimService defines the claim lifecycle operations for the current user.
type ClaimService interface {
	// ClaimDeal creates a pending claim for the deal and schedules its
	// review. Fails with domain.ErrUnauthenticated, domain.ErrDealNotFound,
	// domain.ErrVerificationRequired, domain.ErrAlreadyClaimed, or
	// domain.ErrClaimInFlight.
	ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error)
	// HasClaimed reports whether the user has any claim for the deal,
	// regardless of status.
	HasClaimed(ctx context.Context, userID, dealID string) (bool, error)
	// ClaimedDeals returns the user's claims in creation order, each joined
	// with its resolved deal. Claims whose deal cannot be resolved are
	// skipped.
	ClaimedDeals(ctx context.Context, userID string) ([]domain.ClaimedDeal, error)
}

// ReviewService resolves pending claims to their terminal status.
type ReviewService interface {
	Decide(ctx context.Context, claimID string) error
}
