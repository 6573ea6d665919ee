package ports

import (
	"context"
	"time"

	"github.com/launchstack/benefits-api/internal/core/domain"
)

// ClaimRepository defines persistence operations for claims.
type ClaimRepository interface {
	// Create inserts a new claim. Returns domain.ErrAlreadyClaimed when a
	// claim for the same (user, deal) pair already exists.
	Create(ctx context.Context, c *domain.Claim) error
	FindByID(ctx context.Context, id string) (*domain.Claim, error)
	// ListByUser returns the user's claims in creation order.
	ListByUser(ctx context.Context, userID string) ([]domain.Claim, error)
	ExistsByUserAndDeal(ctx context.Context, userID, dealID string) (bool, error)
	// UpdateDecision sets the terminal status and decision timestamp on a
	// claim that is still pending. Terminal claims are left untouched.
	UpdateDecision(ctx context.Context, id string, status domain.ClaimStatus, decidedAt time.Time) error
	// CountApprovedByDeal returns the number of approved claims for a deal,
	// used to enforce the claim cap.
	CountApprovedByDeal(ctx context.Context, dealID string) (int64, error)
	// ListPending returns all claims awaiting review, oldest first. Used to
	// re-enqueue reviews after a restart.
	ListPending(ctx context.Context) ([]domain.Claim, error)
}
