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

// creditHandler handles HTTP requests for balances and the transaction ledger.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

// RegisterCreditRoutes registers the credit routes on a group already guarded by AuthMiddleware.
func RegisterCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.GET("", h.getBalance)
		credits.POST("", h.earnCredits) // Admin only
		credits.GET("/transactions", h.getTransactions)
		credits.GET("/summary", h.getSummary)
		credits.GET("/:userId", h.getBalance)                   // Own or admin
		credits.GET("/:userId/transactions", h.getTransactions) // Own or admin
		credits.GET("/:userId/summary", h.getSummary)           // Own or admin
	}
}

// targetUser resolves whose ledger the request addresses. Without a :userId parameter it is
// the caller; reading another user's ledger requires the admin role.
func targetUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		respondError(c, http.StatusUnauthorized, dto.CodeUnauthorized, "Unauthorized")
		return "", false
	}

	target := c.Param("userId")
	if target == "" || target == callerID {
		return callerID, true
	}
	if !middleware.IsAdmin(c) {
		logger.Warn("Cross-user ledger access denied", slog.String("target_user_id", target))
		respondError(c, http.StatusForbidden, dto.CodeForbidden, "Forbidden")
		return "", false
	}
	return target, true
}

// getBalance godoc
// @Summary Get a credit balance
// @Description Returns the balance of the caller, or of userId for admins. The balance is initialised on first access.
// @Tags credits
// @Produce json
// @Param userId path string false "User ID (admin or self)"
// @Param include query string false "Comma separated extras: history, summary"
// @Success 200 {object} dto.SuccessResponse{data=dto.BalanceResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Security BearerAuth
// @Router /api/v1/credits [get]
// @Router /api/v1/credits/{userId} [get]
func (h *creditHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := targetUser(c, logger)
	if !ok {
		return
	}

	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}

	ctx := c.Request.Context()
	details, err := h.creditService.GetBalanceWithDetails(ctx, userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	resp := dto.BalanceResponse{BalanceDetails: *details}

	if query.Includes("history") {
		history, err := h.creditService.GetTransactionHistory(ctx, userID, domain.HistoryFilter{})
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		resp.History = history
	}
	if query.Includes("summary") {
		summary, err := h.creditService.GetCreditSummary(ctx, userID)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		resp.Summary = summary
	}

	respondOK(c, http.StatusOK, resp)
}

// getTransactions godoc
// @Summary List credit transactions
// @Description Returns a page of the ledger, newest first
// @Tags credits
// @Produce json
// @Param userId path string false "User ID (admin or self)"
// @Param limit query int false "Page size (1-100)" default(10)
// @Param offset query int false "Rows to skip" default(0)
// @Param startDate query string false "Inclusive lower bound (RFC3339)"
// @Param endDate query string false "Inclusive upper bound (RFC3339)"
// @Success 200 {object} dto.SuccessResponse{data=domain.TransactionHistory}
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Security BearerAuth
// @Router /api/v1/credits/transactions [get]
// @Router /api/v1/credits/{userId}/transactions [get]
func (h *creditHandler) getTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := targetUser(c, logger)
	if !ok {
		return
	}

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, logger, err)
		return
	}
	filter, err := query.ToHistoryFilter()
	if err != nil {
		respondBindError(c, logger, err)
		return
	}

	history, err := h.creditService.GetTransactionHistory(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusOK, history)
}

// getSummary godoc
// @Summary Get lifetime credit totals
// @Description Returns earned and spent totals together with the live balance
// @Tags credits
// @Produce json
// @Param userId path string false "User ID (admin or self)"
// @Success 200 {object} dto.SuccessResponse{data=domain.CreditSummary}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Security BearerAuth
// @Router /api/v1/credits/summary [get]
// @Router /api/v1/credits/{userId}/summary [get]
func (h *creditHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := targetUser(c, logger)
	if !ok {
		return
	}

	summary, err := h.creditService.GetCreditSummary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}

// earnCredits godoc
// @Summary Grant credits
// @Description Adds credits to a user's balance and records an earn entry. Admin only.
// @Tags credits
// @Accept json
// @Produce json
// @Param grant body dto.EarnCreditsRequest true "Grant details"
// @Success 201 {object} dto.SuccessResponse{data=dto.EarnCreditsResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Transaction failed"
// @Security BearerAuth
// @Router /api/v1/credits [post]
func (h *creditHandler) earnCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, dto.CodeUnauthorized, "Unauthorized")
		return
	}
	if !middleware.IsAdmin(c) {
		logger.Warn("Non-admin attempted to grant credits")
		respondError(c, http.StatusForbidden, dto.CodeForbidden, "Forbidden")
		return
	}

	var req dto.EarnCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID := req.UserID
	if userID == "" {
		userID = callerID
	}

	logger.Info("Received request to grant credits",
		slog.String("target_user_id", userID),
		slog.Int64("amount", req.Amount),
		slog.String("reason", req.Reason))

	res, err := h.creditService.EarnCredits(c.Request.Context(), userID, req.Amount, req.Reason, req.Metadata)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.ToEarnCreditsResponse(res))
}
