package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

func catalogOf(n int) *stubCatalog {
	deals := make([]domain.Deal, 0, n)
	for i := 0; i < n; i++ {
		deals = append(deals, domain.Deal{
			ID:       fmt.Sprintf("d%d", i+1),
			Title:    fmt.Sprintf("Deal %d", i+1),
			Category: domain.CategoryCloud,
		})
	}
	return &stubCatalog{deals: deals}
}

func TestCatalogService_GetDeal(t *testing.T) {
	svc := NewCatalogService(catalogOf(3))

	deal, err := svc.GetDeal("d2")
	if err != nil {
		t.Fatalf("GetDeal returned error: %v", err)
	}
	if deal.ID != "d2" {
		t.Fatalf("unexpected deal: %s", deal.ID)
	}

	if _, err := svc.GetDeal("nope"); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

func TestCatalogService_ListDeals_Defaults(t *testing.T) {
	svc := NewCatalogService(catalogOf(5))

	result, err := svc.ListDeals(ports.ListDealsInput{})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if result.Total != 5 || len(result.Items) != 5 {
		t.Fatalf("expected all 5 deals, got total=%d items=%d", result.Total, len(result.Items))
	}
	if result.Page != 1 || result.Limit != defaultPageLimit {
		t.Fatalf("unexpected defaults: page=%d limit=%d", result.Page, result.Limit)
	}
	if result.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", result.TotalPages)
	}
}

func TestCatalogService_ListDeals_Pagination(t *testing.T) {
	svc := NewCatalogService(catalogOf(25))

	page1, err := svc.ListDeals(ports.ListDealsInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if len(page1.Items) != 10 || page1.Items[0].ID != "d1" {
		t.Fatalf("unexpected first page: %d items, first %s", len(page1.Items), page1.Items[0].ID)
	}
	if page1.Total != 25 || page1.TotalPages != 3 {
		t.Fatalf("unexpected totals: total=%d pages=%d", page1.Total, page1.TotalPages)
	}

	page3, err := svc.ListDeals(ports.ListDealsInput{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if len(page3.Items) != 5 || page3.Items[0].ID != "d21" {
		t.Fatalf("unexpected last page: %d items", len(page3.Items))
	}

	beyond, err := svc.ListDeals(ports.ListDealsInput{Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Fatalf("page past the end must be empty, got %d items", len(beyond.Items))
	}
}

func TestCatalogService_ListDeals_LimitCapped(t *testing.T) {
	svc := NewCatalogService(catalogOf(3))

	result, err := svc.ListDeals(ports.ListDealsInput{Limit: 100000})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, result.Limit)
	}
}

func TestCatalogService_ListDeals_FilterApplied(t *testing.T) {
	cat := &stubCatalog{deals: []domain.Deal{
		{ID: "d1", Title: "Open", Category: domain.CategoryCloud, IsLocked: false},
		{ID: "d2", Title: "Locked", Category: domain.CategoryCloud, IsLocked: true},
	}}
	svc := NewCatalogService(cat)

	result, err := svc.ListDeals(ports.ListDealsInput{Access: "locked"})
	if err != nil {
		t.Fatalf("ListDeals returned error: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "d2" {
		t.Fatalf("access filter not applied: %+v", result)
	}
}

func TestCatalogService_Categories(t *testing.T) {
	svc := NewCatalogService(catalogOf(1))

	infos := svc.Categories()
	if len(infos) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(infos))
	}
	if infos[0].Value != "cloud" || infos[0].Label != "Cloud Services" {
		t.Fatalf("unexpected first category: %+v", infos[0])
	}
	for _, ci := range infos {
		if ci.Icon == "" {
			t.Fatalf("category %s has no icon", ci.Value)
		}
	}
}
