package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, dto.NewSuccessResponse(data))
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps a service error to a status code. Messages of unexpected
// errors are never sent to the client; credit system errors carry a correlation id instead.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case apperrors.IsBusinessError(err):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err, dto.CodeValidationError, err.Error()))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(err, dto.CodeUnauthorized, "Unauthorized"))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(err, dto.CodeForbidden, "Forbidden"))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err, dto.CodeNotFound, "Not found"))
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(err, dto.CodeValidationError, "Conflicts with an existing record"))
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err, dto.CodeInternalError, "Internal server error"))
	}
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	respondError(c, http.StatusBadRequest, dto.CodeValidationError, "Invalid request: "+err.Error())
}
