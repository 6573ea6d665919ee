package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/launchstack/benefits-api/internal/api/metrics"
	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

type reviewService struct {
	claims  ports.ClaimRepository
	catalog ports.DealCatalog
	log     zerolog.Logger
}

// NewReviewService returns a ReviewService implementation. It models the
// backend decision that resolves a pending claim: approval by default,
// rejection when the deal is gone, expired, or out of capacity.
func NewReviewService(claims ports.ClaimRepository, catalog ports.DealCatalog, log zerolog.Logger) ports.ReviewService {
	return &reviewService{claims: claims, catalog: catalog, log: log}
}

// Decide resolves a single pending claim. Safe to call more than once for the
// same claim: terminal claims are left untouched.
func (s *reviewService) Decide(ctx context.Context, claimID string) error {
	start := time.Now()

	// 1. Load the claim; a missing claim is a hard error, it was scheduled.
	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		metrics.ReviewsErrorsTotal.WithLabelValues("claim_not_found").Inc()
		return fmt.Errorf("review claim: %w", err)
	}

	// 2. Idempotence: a claim decided elsewhere stays decided.
	if claim.Status.Terminal() {
		s.log.Debug().Str("claim_id", claimID).Str("status", string(claim.Status)).Msg("claim already decided, skipping")
		return nil
	}

	// 3. Decide. Approval is the default outcome.
	decision, reason := s.decide(ctx, claim)

	if !claim.Status.CanTransitionTo(decision) {
		metrics.ReviewsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("review claim: %w (from %s to %s)", domain.ErrInvalidTransition, claim.Status, decision)
	}

	// 4. Persist the terminal status in place; the claim sequence never
	// reorders.
	now := time.Now().UTC()
	if err := s.claims.UpdateDecision(ctx, claimID, decision, now); err != nil {
		metrics.ReviewsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("review claim: update status: %w", err)
	}

	metrics.ClaimsReviewedTotal.WithLabelValues(string(decision)).Inc()
	metrics.ReviewDuration.WithLabelValues(string(decision)).Observe(time.Since(start).Seconds())

	evt := s.log.Info().Str("claim_id", claimID).Str("decision", string(decision))
	if reason != "" {
		evt = evt.Str("reason", reason)
	}
	evt.Msg("claim reviewed")

	return nil
}

// decide returns the terminal status for a pending claim and, for rejections,
// a short reason.
func (s *reviewService) decide(ctx context.Context, claim *domain.Claim) (domain.ClaimStatus, string) {
	deal, err := s.catalog.DealByID(claim.DealID)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			return domain.ClaimRejected, "deal_not_found"
		}
		// Catalog reads are in-memory; any other error means a bug, reject
		// rather than approve blind.
		return domain.ClaimRejected, "catalog_error"
	}

	if deal.ExpiresAt != nil && time.Now().UTC().After(*deal.ExpiresAt) {
		return domain.ClaimRejected, "deal_expired"
	}

	if deal.MaxClaims > 0 {
		approved, err := s.claims.CountApprovedByDeal(ctx, claim.DealID)
		if err != nil {
			s.log.Warn().Err(err).Str("deal_id", claim.DealID).Msg("cap count failed, approving without cap check")
			return domain.ClaimApproved, ""
		}
		// Seeded claim totals count against the cap alongside live approvals.
		if int64(deal.TotalClaims)+approved >= int64(deal.MaxClaims) {
			return domain.ClaimRejected, "cap_reached"
		}
	}

	return domain.ClaimApproved, ""
}
