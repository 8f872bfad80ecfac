package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/locvowork/academic_records/internal/logger"
)

// ==================== Response Types ====================

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ==================== Helper Functions ====================

func respondJSON(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

func respondError(c echo.Context, statusCode int, message string) error {
	return respondJSON(c, statusCode, ErrorResponse{Error: message})
}

// respondStoreError answers 500 with the store's message as is. PostgreSQL
// errors are logged with their code and constraint name.
func respondStoreError(c echo.Context, action string, err error) error {
	logStoreError(c.Request().Context(), action, err)
	return respondError(c, http.StatusInternalServerError, err.Error())
}

func logStoreError(ctx context.Context, action string, err error) {
	e := logger.Event(ctx, zerolog.ErrorLevel).Err(err)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		e = e.Str("pg_code", string(pqErr.Code)).
			Str("pg_table", pqErr.Table).
			Str("pg_constraint", pqErr.Constraint)
	}
	e.Msgf("Failed to %s", action)
}
