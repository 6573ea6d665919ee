package ports

import (
	"github.com/launchstack/benefits-api/internal/core/domain"
)

// DealCatalog is the read-only deal store. The catalog is loaded once at
// startup and immutable afterwards, so lookups never block and take no
// context.
type DealCatalog interface {
	// Deals returns the full catalog in its fixed order.
	Deals() []domain.Deal
	// DealByID returns the matching deal or domain.ErrDealNotFound.
	DealByID(id string) (*domain.Deal, error)
}

// ListDealsInput carries all query parameters for the deal list endpoint.
type ListDealsInput struct {
	Search   string // optional: substring match on title, description, partner
	Category string // optional: category value, or "all"
	Access   string // optional: "all" | "locked" | "unlocked"
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by the service)
}

// ListDealsResult is returned by ListDeals.
type ListDealsResult struct {
	Items      []domain.Deal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CategoryInfo is the display metadata for one catalog category.
type CategoryInfo struct {
	Value string
	Label string
	Icon  string
}

// CatalogService defines read-only query operations over the deal catalog.
type CatalogService interface {
	GetDeal(id string) (*domain.Deal, error)
	ListDeals(input ListDealsInput) (*ListDealsResult, error)
	Categories() []CategoryInfo
}
