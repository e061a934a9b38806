package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/bilgisen/bookshall-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// BillingSignatureHeader carries the sha256=<hex> HMAC of the raw request body.
const BillingSignatureHeader = "X-Billing-Signature"

// MaxWebhookBodyBytes bounds the billing event payload.
const MaxWebhookBodyBytes = 1 << 20

type webhookHandler struct {
	billingService portssvc.BillingWebhookSvc
}

// RegisterWebhookRoutes registers the billing provider callbacks. They authenticate by signature only.
func RegisterWebhookRoutes(rg *gin.RouterGroup, billingService portssvc.BillingWebhookSvc) {
	h := &webhookHandler{billingService: billingService}
	rg.POST("/billing", h.handleBillingEvent)
}

// handleBillingEvent godoc
// @Summary Receive a billing provider event
// @Description Active and renewed subscriptions grant the plan allotment. Events that cannot be attributed are acknowledged without effect.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Billing-Signature header string true "sha256=<hex HMAC of the body>"
// @Param event body domain.BillingEvent true "Billing event"
// @Success 200 {object} dto.SuccessResponse{data=domain.WebhookOutcome}
// @Failure 400 {object} dto.ErrorResponse "Malformed event"
// @Failure 401 {object} dto.ErrorResponse "Bad signature"
// @Failure 413 {object} dto.ErrorResponse "Payload too large"
// @Failure 500 {object} dto.ErrorResponse "Ledger unavailable, retry later"
// @Router /webhooks/billing [post]
func (h *webhookHandler) handleBillingEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Billing webhook body too large", slog.Int64("limit", tooLarge.Limit))
			respondError(c, http.StatusRequestEntityTooLarge, dto.CodeValidationError, "Event payload too large")
			return
		}
		respondBindError(c, logger, err)
		return
	}
	if err := h.billingService.VerifySignature(payload, c.GetHeader(BillingSignatureHeader)); err != nil {
		logger.Warn("Billing webhook signature rejected", slog.String("error", err.Error()))
		respondError(c, http.StatusUnauthorized, dto.CodeUnauthorized, "Invalid signature")
		return
	}

	var event domain.BillingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		respondBindError(c, logger, err)
		return
	}
	if event.ID == "" || event.Type == "" {
		respondError(c, http.StatusBadRequest, dto.CodeValidationError, "Event id and type are required")
		return
	}

	outcome, err := h.billingService.HandleEvent(c.Request.Context(), event)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusOK, outcome)
}
