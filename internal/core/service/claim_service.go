package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/launchstack/benefits-api/internal/api/metrics"
	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

// ClaimGuard abstracts the per-(user, deal) in-flight lock (Redis). It
// serializes overlapping claim attempts for the same pair so that at most one
// reaches the repository at a time.
type ClaimGuard interface {
	Acquire(ctx context.Context, userID, dealID string) (bool, error)
	Release(ctx context.Context, userID, dealID string) error
}

// ReviewScheduler accepts review tasks for asynchronous resolution.
type ReviewScheduler interface {
	Schedule(task ports.ReviewTask)
}

// ClaimService implements the claim lifecycle for authenticated users.
type ClaimService struct {
	users       ports.UserRepository
	catalog     ports.DealCatalog
	claims      ports.ClaimRepository
	guard       ClaimGuard
	scheduler   ReviewScheduler
	reviewDelay time.Duration
	log         zerolog.Logger
}

func NewClaimService(
	users ports.UserRepository,
	catalog ports.DealCatalog,
	claims ports.ClaimRepository,
	guard ClaimGuard,
	scheduler ReviewScheduler,
	reviewDelay time.Duration,
	log zerolog.Logger,
) *ClaimService {
	return &ClaimService{
		users:       users,
		catalog:     catalog,
		claims:      claims,
		guard:       guard,
		scheduler:   scheduler,
		reviewDelay: reviewDelay,
		log:         log,
	}
}

// ClaimDeal creates a pending claim for the deal and schedules its review.
// All eligibility checks run before any write.
func (s *ClaimService) ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error) {
	// 1. Session check: no user, no claim.
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	// 2. The deal must exist in the catalog.
	deal, err := s.catalog.DealByID(dealID)
	if err != nil {
		return nil, err
	}

	// 3. Eligibility gate: locked deals require a verified account.
	if deal.IsLocked && !user.IsVerified {
		return nil, domain.ErrVerificationRequired
	}

	// 4. Fast duplicate check. The unique index is the authority; this keeps
	// the common case cheap.
	exists, err := s.claims.ExistsByUserAndDeal(ctx, userID, dealID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyClaimed
	}

	// 5. In-flight guard closes the window between check and insert for
	// overlapping requests on the same (user, deal) pair.
	acquired, err := s.guard.Acquire(ctx, userID, dealID)
	if err != nil {
		s.log.Warn().Err(err).Str("deal_id", dealID).Msg("claim guard unavailable, relying on unique index")
	} else if !acquired {
		metrics.ClaimGuardTotal.WithLabelValues("blocked").Inc()
		return nil, domain.ErrClaimInFlight
	} else {
		metrics.ClaimGuardTotal.WithLabelValues("acquired").Inc()
		defer func() {
			if relErr := s.guard.Release(ctx, userID, dealID); relErr != nil {
				s.log.Warn().Err(relErr).Str("deal_id", dealID).Msg("failed to release claim guard")
			}
		}()
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:        uuid.NewString(),
		DealID:    dealID,
		UserID:    userID,
		Status:    domain.ClaimPending,
		ClaimedAt: now,
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.scheduler.Schedule(ports.ReviewTask{ClaimID: claim.ID, DueAt: now.Add(s.reviewDelay)})

	access := "unlocked"
	if deal.IsLocked {
		access = "locked"
	}
	metrics.ClaimsCreatedTotal.WithLabelValues(access).Inc()

	s.log.Info().
		Str("claim_id", claim.ID).
		Str("deal_id", dealID).
		Str("user_id", userID).
		Msg("claim created")

	return claim, nil
}

// HasClaimed reports whether the user has any claim for the deal, regardless
// of status.
func (s *ClaimService) HasClaimed(ctx context.Context, userID, dealID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthenticated
	}
	return s.claims.ExistsByUserAndDeal(ctx, userID, dealID)
}

// ClaimedDeals returns the user's claims in creation order joined with their
// deals. Claims whose deal no longer resolves are skipped rather than failing
// the whole view.
func (s *ClaimService) ClaimedDeals(ctx context.Context, userID string) ([]domain.ClaimedDeal, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.claims.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined := make([]domain.ClaimedDeal, 0, len(claims))
	for _, c := range claims {
		deal, err := s.catalog.DealByID(c.DealID)
		if err != nil {
			s.log.Warn().Str("claim_id", c.ID).Str("deal_id", c.DealID).Msg("claim references unknown deal, skipping")
			continue
		}
		joined = append(joined, domain.ClaimedDeal{Claim: c, Deal: *deal})
	}
	return joined, nil
}
