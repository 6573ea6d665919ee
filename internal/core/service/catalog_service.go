package service

import (
	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CatalogService answers read-only queries over the deal catalog.
type CatalogService struct {
	catalog ports.DealCatalog
}

func NewCatalogService(catalog ports.DealCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// GetDeal returns the deal with the given id or domain.ErrDealNotFound.
func (s *CatalogService) GetDeal(id string) (*domain.Deal, error) {
	return s.catalog.DealByID(id)
}

// ListDeals filters the catalog and returns one page of matches. Filtering is
// order-preserving; pagination is applied after filtering so the total counts
// matches, not catalog entries.
func (s *CatalogService) ListDeals(input ports.ListDealsInput) (*ports.ListDealsResult, error) {
	category := input.Category
	if category == "" {
		category = domain.CategoryAll
	}
	access := domain.AccessLevel(input.Access)
	if input.Access == "" {
		access = domain.AccessAll
	}

	matched := domain.FilterDeals(s.catalog.Deals(), input.Search, category, access)
	total := int64(len(matched))

	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListDealsResult{
		Items:      matched[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Categories returns the display metadata for the fixed category enumeration.
func (s *CatalogService) Categories() []ports.CategoryInfo {
	cats := domain.Categories()
	infos := make([]ports.CategoryInfo, 0, len(cats))
	for _, c := range cats {
		infos = append(infos, ports.CategoryInfo{
			Value: string(c),
			Label: c.Label(),
			Icon:  c.Icon(),
		})
	}
	return infos
}
