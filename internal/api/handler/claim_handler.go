package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/launchstack/benefits-api/internal/core/domain"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

// ClaimHandler handles HTTP requests for the claim lifecycle.
type ClaimHandler struct {
	service ports.ClaimService
}

func NewClaimHandler(service ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Create handles POST /v1/claims — claims a deal for the current user. The
// claim starts pending and is resolved asynchronously.
//
// @Summary      Claim a deal
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClaimRequest  true  "Deal to claim"
// @Success      202   {object}  claimResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/claims [post]
func (h *ClaimHandler) Create(c echo.Context) error {
	var req createClaimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	claim, err := h.service.ClaimDeal(c.Request().Context(), userID, req.DealID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		case errors.Is(err, domain.ErrDealNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "deal not found"})
		case errors.Is(err, domain.ErrVerificationRequired):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "deal requires a verified account"})
		case errors.Is(err, domain.ErrAlreadyClaimed):
			return c.JSON(http.StatusConflict, errorResponse{Error: "deal already claimed"})
		case errors.Is(err, domain.ErrClaimInFlight):
			return c.JSON(http.StatusConflict, errorResponse{Error: "claim already in progress"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusAccepted, toClaimResponse(*claim))
}

// List handles GET /v1/claims — the current user's claims in creation order,
// each joined with its deal.
//
// @Summary      List the current user's claimed deals
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClaimsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	claimed, err := h.service.ClaimedDeals(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	items := make([]claimedDealResponse, 0, len(claimed))
	for _, cd := range claimed {
		items = append(items, claimedDealResponse{
			Claim: toClaimResponse(cd.Claim),
			Deal:  toDealSummary(cd.Deal),
		})
	}
	return c.JSON(http.StatusOK, listClaimsResponse{Data: items})
}

// Claimed handles GET /v1/deals/:id/claimed — whether the current user has
// claimed the deal, regardless of claim status.
//
// @Summary      Check whether the current user has claimed a deal
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Deal id"
// @Success      200  {object}  claimedStatusResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/deals/{id}/claimed [get]
func (h *ClaimHandler) Claimed(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	dealID := c.Param("id")
	claimed, err := h.service.HasClaimed(c.Request().Context(), userID, dealID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, claimedStatusResponse{DealID: dealID, Claimed: claimed})
}

func toClaimResponse(cl domain.Claim) claimResponse {
	return claimResponse{
		ID:         cl.ID,
		DealID:     cl.DealID,
		UserID:     cl.UserID,
		Status:     string(cl.Status),
		ClaimedAt:  cl.ClaimedAt,
		ApprovedAt: cl.ApprovedAt,
	}
}
