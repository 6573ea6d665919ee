package handler

import "time"

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type partnerResponse struct {
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Website string `json:"website"`
}

// dealSummaryResponse is the lightweight item used in list responses. It
// intentionally omits the long description and eligibility rules to keep
// payloads small.
type dealSummaryResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	Partner          partnerResponse `json:"partner"`
	Category         string          `json:"category"`
	CategoryLabel    string          `json:"category_label"`
	Discount         string          `json:"discount"`
	OriginalPrice    string          `json:"original_price,omitempty"`
	IsLocked         bool            `json:"is_locked"`
	TotalClaims      int             `json:"total_claims"`
}

type getDealResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ShortDescription  string          `json:"short_description"`
	Partner           partnerResponse `json:"partner"`
	Category          string          `json:"category"`
	CategoryLabel     string          `json:"category_label"`
	CategoryIcon      string          `json:"category_icon"`
	Discount          string          `json:"discount"`
	OriginalPrice     string          `json:"original_price,omitempty"`
	IsLocked          bool            `json:"is_locked"`
	EligibilityRules  []string        `json:"eligibility_rules"`
	ClaimInstructions string          `json:"claim_instructions"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
	TotalClaims       int             `json:"total_claims"`
	MaxClaims         int             `json:"max_claims,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listDealsResponse struct {
	Data       []dealSummaryResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

type categoryResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type listCategoriesResponse struct {
	Data []categoryResponse `json:"data"`
}
