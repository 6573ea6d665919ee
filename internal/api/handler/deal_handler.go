package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

// DealHandler handles HTTP requests for catalog queries.
type DealHandler struct {
	service ports.CatalogService
}

func NewDealHandler(service ports.CatalogService) *DealHandler {
	return &DealHandler{service: service}
}

// List handles GET /v1/deals with search, category, and access filters.
//
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Param        search    query     string  false  "Substring match on title, description, or partner name"
// @Param        category  query     string  false  "Category value, or 'all'"
// @Param        access    query     string  false  "Access level"  Enums(all, locked, unlocked)
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listDealsResponse
// @Failure      500       {object}  errorResponse
// @Router       /v1/deals [get]
func (h *DealHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListDeals(ports.ListDealsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Access:   c.QueryParam("access"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	items := make([]dealSummaryResponse, 0, len(result.Items))
	for _, d := range result.Items {
		items = append(items, toDealSummary(d))
	}

	return c.JSON(http.StatusOK, listDealsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/deals/:id.
//
// @Summary      Get a deal by id
// @Tags         deals
// @Produce      json
// @Param        id   path      string  true  "Deal id"
// @Success      200  {object}  getDealResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/deals/{id} [get]
func (h *DealHandler) Get(c echo.Context) error {
	deal, err := h.service.GetDeal(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "deal not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, getDealResponse{
		ID:                deal.ID,
		Title:             deal.Title,
		Description:       deal.Description,
		ShortDescription:  deal.ShortDescription,
		Partner:           toPartnerResponse(deal.Partner),
		Category:          string(deal.Category),
		CategoryLabel:     deal.Category.Label(),
		CategoryIcon:      deal.Category.Icon(),
		Discount:          deal.Discount,
		OriginalPrice:     deal.OriginalPrice,
		IsLocked:          deal.IsLocked,
		EligibilityRules:  deal.EligibilityRules,
		ClaimInstructions: deal.ClaimInstructions,
		ExpiresAt:         deal.ExpiresAt,
		TotalClaims:       deal.TotalClaims,
		MaxClaims:         deal.MaxClaims,
	})
}

// Categories handles GET /v1/categories — the fixed category enumeration with
// display labels and icons.
//
// @Summary      List deal categories
// @Tags         deals
// @Produce      json
// @Success      200  {object}  listCategoriesResponse
// @Router       /v1/categories [get]
func (h *DealHandler) Categories(c echo.Context) error {
	infos := h.service.Categories()
	items := make([]categoryResponse, 0, len(infos))
	for _, ci := range infos {
		items = append(items, categoryResponse{Value: ci.Value, Label: ci.Label, Icon: ci.Icon})
	}
	return c.JSON(http.StatusOK, listCategoriesResponse{Data: items})
}

func toDealSummary(d domain.Deal) dealSummaryResponse {
	return dealSummaryResponse{
		ID:               d.ID,
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Partner:          toPartnerResponse(d.Partner),
		Category:         string(d.Category),
		CategoryLabel:    d.Category.Label(),
		Discount:         d.Discount,
		OriginalPrice:    d.OriginalPrice,
		IsLocked:         d.IsLocked,
		TotalClaims:      d.TotalClaims,
	}
}

func toPartnerResponse(p domain.Partner) partnerResponse {
	return partnerResponse{Name: p.Name, Logo: p.Logo, Website: p.Website}
}
