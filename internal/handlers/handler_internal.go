package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/bilgisen/bookshall-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// internalHandler serves service-to-service calls from the web application.
type internalHandler struct {
	paidActionService portssvc.PaidActionSvc
	userService       portssvc.UserSvcFacade
}

// RegisterInternalRoutes registers the internal routes on a group already guarded by InternalTokenAuth.
func RegisterInternalRoutes(rg *gin.RouterGroup, paidActionService portssvc.PaidActionSvc, userService portssvc.UserSvcFacade) {
	h := &internalHandler{paidActionService: paidActionService, userService: userService}

	rg.POST("/resource-events", h.handleResourceEvent)
	rg.GET("/users/:userId", h.getUser)
	rg.PUT("/users/:userId", h.syncUser)
}

// handleResourceEvent godoc
// @Summary Charge or refund a billable resource
// @Description "created" charges the action price and fails with 400 INSUFFICIENT_CREDITS when the balance is too low.
// @Description "deleted" refunds the price and always answers 200; check data.refunded.
// @Tags internal
// @Accept json
// @Produce json
// @Param event body dto.ResourceEventRequest true "Resource lifecycle event"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or insufficient credits"
// @Failure 401 {object} dto.ErrorResponse "Invalid internal token"
// @Failure 500 {object} dto.ErrorResponse "Transaction failed"
// @Security InternalToken
// @Router /internal/v1/resource-events [post]
func (h *internalHandler) handleResourceEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResourceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	logger = logger.With(
		slog.String("user_id", req.UserID),
		slog.String("resource_type", string(req.ResourceType)),
		slog.String("resource_id", req.ResourceID),
		slog.String("event", string(req.Event)))
	ctx := middleware.WithLogger(c.Request.Context(), logger)

	switch req.Event {
	case domain.ResourceCreated:
		action, ok := req.ResourceType.PaidAction()
		if !ok {
			respondError(c, http.StatusBadRequest, dto.CodeValidationError, "Unknown resource type")
			return
		}
		res, err := h.paidActionService.Charge(ctx, req.UserID, action, req.ResourceID, req.Metadata)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		respondOK(c, http.StatusOK, res)
	case domain.ResourceDeleted:
		respondOK(c, http.StatusOK, h.paidActionService.Refund(ctx, req.UserID, req.ResourceType, req.ResourceID, req.Metadata))
	default:
		respondError(c, http.StatusBadRequest, dto.CodeValidationError, "Unknown event")
	}
}

// getUser godoc
// @Summary Get a user directory entry
// @Description Returns the mirrored directory entry, including the linked billing customer.
// @Tags internal
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=domain.User}
// @Failure 401 {object} dto.ErrorResponse "Invalid internal token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security InternalToken
// @Router /internal/v1/users/{userId} [get]
func (h *internalHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

// syncUser godoc
// @Summary Upsert a user directory entry
// @Description Mirrors a user from the authentication service so credits and billing events can be attributed.
// @Tags internal
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param user body dto.SyncUserRequest true "Directory fields"
// @Success 200 {object} dto.SuccessResponse{data=domain.User}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid internal token"
// @Failure 409 {object} dto.ErrorResponse "Email or billing customer already linked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security InternalToken
// @Router /internal/v1/users/{userId} [put]
func (h *internalHandler) syncUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userId")

	var req dto.SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	user, err := h.userService.SyncUser(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
