package handler

import (
	anticipationapp "github.com/anticipay/backend/internal/application/anticipation"
	"github.com/anticipay/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnticipationHandler handles anticipation request API endpoints
type AnticipationHandler struct {
	BaseHandler
	anticipationService *anticipationapp.AnticipationService
}

// NewAnticipationHandler creates a new AnticipationHandler
func NewAnticipationHandler(anticipationService *anticipationapp.AnticipationService) *AnticipationHandler {
	return &AnticipationHandler{
		anticipationService: anticipationService,
	}
}

// AnticipationRequestView represents an anticipation request in API responses
// @Description Anticipation request view
type AnticipationRequestView struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatorID   string  `json:"creatorId" example:"550e8400-e29b-41d4-a716-446655440001"`
	GrossAmount float64 `json:"grossAmount" example:"500.00"`
	FeeRate     float64 `json:"feeRate" example:"0.05"`
	NetAmount   float64 `json:"netAmount" example:"475.00"`
	RequestedAt string  `json:"requestedAt" example:"2026-08-22T10:00:00Z"`
	Status      string  `json:"status" example:"PENDING"`
	DecisionAt  *string `json:"decisionAt" example:"2026-08-22T11:00:00Z"`
	CreatedAt   string  `json:"createdAt" example:"2026-08-22T10:00:00Z"`
	UpdatedAt   string  `json:"updatedAt" example:"2026-08-22T10:00:00Z"`
	Version     int     `json:"version" example:"1"`
}

// PurgeResultView represents the outcome of an administrative purge
// @Description Purge outcome
type PurgeResultView struct {
	CreatorID string `json:"creatorId" example:"550e8400-e29b-41d4-a716-446655440001"`
	Purged    int64  `json:"purged" example:"3"`
}

// Create godoc
// @ID           createAnticipation
// @Summary      Create an anticipation request
// @Description  Create a new anticipation request for a creator. A creator can
// @Description  hold at most one pending request at a time, and the gross
// @Description  amount must meet the minimum.
// @Tags         anticipations
// @Accept       json
// @Produce      json
// @Param        request body anticipationapp.CreateAnticipationRequest true "Create request"
// @Success      200 {object} APIResponse[AnticipationRequestView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations [post]
func (h *AnticipationHandler) Create(c *gin.Context) {
	var req anticipationapp.CreateAnticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	request, err := h.anticipationService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List godoc
// @ID           listAnticipations
// @Summary      List anticipation requests for a creator
// @Description  List every anticipation request owned by a creator, newest first
// @Tags         anticipations
// @Produce      json
// @Param        creatorId query string true "Creator ID" format(uuid)
// @Success      200 {object} APIResponse[[]AnticipationRequestView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations [get]
func (h *AnticipationHandler) List(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Query("creatorId"))
	if err != nil {
		h.BadRequest(c, "Invalid creator ID format")
		return
	}

	requests, err := h.anticipationService.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requests)
}

// Approve godoc
// @ID           approveAnticipation
// @Summary      Approve an anticipation request
// @Description  Approve a pending anticipation request. Only pending requests
// @Description  can be approved; the decision is recorded exactly once.
// @Tags         anticipations
// @Produce      json
// @Param        id path string true "Anticipation request ID" format(uuid)
// @Success      200 {object} APIResponse[AnticipationRequestView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations/{id}/approve [post]
func (h *AnticipationHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject godoc
// @ID           rejectAnticipation
// @Summary      Reject an anticipation request
// @Description  Reject a pending anticipation request. Only pending requests
// @Description  can be rejected; the decision is recorded exactly once.
// @Tags         anticipations
// @Produce      json
// @Param        id path string true "Anticipation request ID" format(uuid)
// @Success      200 {object} APIResponse[AnticipationRequestView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations/{id}/reject [post]
func (h *AnticipationHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *AnticipationHandler) decide(c *gin.Context, approve bool) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid anticipation request ID format")
		return
	}

	request, err := h.anticipationService.Decide(c.Request.Context(), requestID, approve)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Simulate godoc
// @ID           simulateAnticipation
// @Summary      Simulate an anticipation request
// @Description  Compute the fee breakdown for a gross amount without creating
// @Description  anything. The id and creatorId in the result are throwaway
// @Description  values and do not refer to a persisted request.
// @Tags         anticipations
// @Produce      json
// @Param        grossAmount query number true "Gross amount" example(350.00)
// @Success      200 {object} APIResponse[AnticipationRequestView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations/simulate [get]
func (h *AnticipationHandler) Simulate(c *gin.Context) {
	grossAmount, err := decimal.NewFromString(c.Query("grossAmount"))
	if err != nil {
		h.BadRequest(c, "Invalid gross amount format")
		return
	}

	request, err := h.anticipationService.Simulate(c.Request.Context(), grossAmount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Cleanup godoc
// @ID           cleanupAnticipations
// @Summary      Purge anticipation requests for a creator
// @Description  Delete every anticipation request owned by a creator. This is
// @Description  an administrative capability and only exists when the server
// @Description  was started with cleanup enabled.
// @Tags         anticipations
// @Produce      json
// @Param        creatorId query string true "Creator ID" format(uuid)
// @Success      200 {object} APIResponse[PurgeResultView]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /anticipations/cleanup [delete]
func (h *AnticipationHandler) Cleanup(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Query("creatorId"))
	if err != nil {
		h.BadRequest(c, "Invalid creator ID format")
		return
	}

	result, err := h.anticipationService.PurgeByCreator(c.Request.Context(), creatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
