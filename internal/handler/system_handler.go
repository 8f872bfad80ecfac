package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/academic_records/internal/logger"
	"github.com/locvowork/academic_records/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthHandler handles GET /api/health
func (h *HealthHandler) HealthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.db.PingContext(ctx); err != nil {
		logger.ErrorLog(ctx, "Health check failed: %v", err)
		return respondError(c, http.StatusServiceUnavailable, err.Error())
	}
	return respondJSON(c, http.StatusOK, HealthResponse{Status: "ok"})
}

// Exporter renders entity tables as xlsx workbooks.
type Exporter interface {
	ExportEntity(ctx context.Context, entity string) ([]byte, error)
	ExportAll(ctx context.Context) ([]byte, error)
}

type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// EntityHandler returns the handler for GET /api/{entity}/export.
func (h *ExportHandler) EntityHandler(entity string) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, err := h.exporter.ExportEntity(c.Request().Context(), entity)
		if errors.Is(err, service.ErrUnknownEntity) {
			return respondError(c, http.StatusNotFound, err.Error())
		}
		if err != nil {
			return respondStoreError(c, "export "+entity, err)
		}
		return sendWorkbook(c, entity+".xlsx", data)
	}
}

// AllHandler handles GET /api/export
func (h *ExportHandler) AllHandler(c echo.Context) error {
	data, err := h.exporter.ExportAll(c.Request().Context())
	if err != nil {
		return respondStoreError(c, "export academic records", err)
	}
	return sendWorkbook(c, "academic_records.xlsx", data)
}

func sendWorkbook(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set("Content-Transfer-Encoding", "binary")
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
