package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

type stubCatalogService struct {
	getFn        func(id string) (*domain.Deal, error)
	listFn       func(input ports.ListDealsInput) (*ports.ListDealsResult, error)
	categoriesFn func() []ports.CategoryInfo
}

func (s *stubCatalogService) GetDeal(id string) (*domain.Deal, error) {
	return s.getFn(id)
}

func (s *stubCatalogService) ListDeals(input ports.ListDealsInput) (*ports.ListDealsResult, error) {
	return s.listFn(input)
}

func (s *stubCatalogService) Categories() []ports.CategoryInfo {
	return s.categoriesFn()
}

func TestDealHandler_List_PassesFilters(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		listFn: func(input ports.ListDealsInput) (*ports.ListDealsResult, error) {
			if input.Search != "aws" || input.Category != "cloud" || input.Access != "locked" {
				t.Fatalf("filters not forwarded: %+v", input)
			}
			if input.Page != 2 || input.Limit != 5 {
				t.Fatalf("pagination not forwarded: %+v", input)
			}
			return &ports.ListDealsResult{
				Items: []domain.Deal{{ID: "1", Title: "AWS Activate", Category: domain.CategoryCloud, IsLocked: true}},
				Total: 1, Page: 2, Limit: 5, TotalPages: 1,
			}, nil
		},
	}
	handler := NewDealHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/deals?search=aws&category=cloud&access=locked&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data: %+v", resp["data"])
	}
	first := data[0].(map[string]any)
	if first["id"] != "1" || first["title"] != "AWS Activate" || first["is_locked"] != true {
		t.Fatalf("unexpected deal payload: %+v", first)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(1) || pagination["page"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", resp["pagination"])
	}
}

func TestDealHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		getFn: func(id string) (*domain.Deal, error) {
			if id != "1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.Deal{
				ID:               "1",
				Title:            "AWS Activate",
				Category:         domain.CategoryCloud,
				IsLocked:         true,
				EligibilityRules: []string{"Less than 5 years old"},
			}, nil
		},
	}
	handler := NewDealHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/deals/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "1" || resp["category_label"] != "Cloud Services" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	rules, ok := resp["eligibility_rules"].([]any)
	if !ok || len(rules) != 1 {
		t.Fatalf("eligibility rules missing: %+v", resp["eligibility_rules"])
	}
}

func TestDealHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		getFn: func(id string) (*domain.Deal, error) {
			return nil, domain.ErrDealNotFound
		},
	}
	handler := NewDealHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/deals/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	_ = handler.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDealHandler_Categories(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		categoriesFn: func() []ports.CategoryInfo {
			return []ports.CategoryInfo{
				{Value: "cloud", Label: "Cloud Services", Icon: "☁️"},
				{Value: "finance", Label: "Finance", Icon: "💰"},
			}
		},
	}
	handler := NewDealHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Categories(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("unexpected data: %+v", resp["data"])
	}
	first := data[0].(map[string]any)
	if first["value"] != "cloud" || first["label"] != "Cloud Services" {
		t.Fatalf("unexpected category payload: %+v", first)
	}
}
