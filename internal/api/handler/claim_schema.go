package handler

import "time"

type createClaimRequest struct {
	DealID string `json:"deal_id" validate:"required"`
}

type claimResponse struct {
	ID         string     `json:"id"`
	DealID     string     `json:"deal_id"`
	UserID     string     `json:"user_id"`
	Status     string     `json:"status"`
	ClaimedAt  time.Time  `json:"claimed_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// claimedDealResponse is one entry of the dashboard view: a claim joined with
// its resolved deal.
type claimedDealResponse struct {
	Claim claimResponse       `json:"claim"`
	Deal  dealSummaryResponse `json:"deal"`
}

type listClaimsResponse struct {
	Data []claimedDealResponse `json:"data"`
}

type claimedStatusResponse struct {
	DealID  string `json:"deal_id"`
	Claimed bool   `json:"claimed"`
}
