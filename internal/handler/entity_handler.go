package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/logger"
)

// EntityHandler serves the five CRUD endpoints of one entity. Name is the
// display name used in messages, e.g. "Professor".
type EntityHandler[R any, W any] struct {
	name string
	repo domain.CRUDRepository[R, W]
}

func NewEntityHandler[R any, W any](name string, repo domain.CRUDRepository[R, W]) *EntityHandler[R, W] {
	return &EntityHandler[R, W]{name: name, repo: repo}
}

// Register mounts the handlers on a group such as /api/professors.
func (h *EntityHandler[R, W]) Register(g *echo.Group) {
	g.GET("", h.ListHandler)
	g.POST("", h.CreateHandler)
	g.GET("/:id", h.GetHandler)
	g.PUT("/:id", h.UpdateHandler)
	g.DELETE("/:id", h.DeleteHandler)
}

func (h *EntityHandler[R, W]) notFound(c echo.Context) error {
	return respondError(c, http.StatusNotFound, h.name+" not found")
}

// parseID reports false for anything that is not a positive integer.
// Such a value cannot name a row, so callers answer 404.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *EntityHandler[R, W]) ListHandler(c echo.Context) error {
	rows, err := h.repo.List(c.Request().Context())
	if err != nil {
		return respondStoreError(c, "list "+h.plural(), err)
	}
	return respondJSON(c, http.StatusOK, rows)
}

func (h *EntityHandler[R, W]) GetHandler(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return h.notFound(c)
	}

	row, err := h.repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		return respondStoreError(c, "get "+h.lower(), err)
	}
	return respondJSON(c, http.StatusOK, row)
}

func (h *EntityHandler[R, W]) CreateHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req W
	if err := c.Bind(&req); err != nil {
		logger.WarnLog(ctx, "Rejected %s body: %v", h.lower(), err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	id, err := h.repo.Create(ctx, &req)
	if err != nil {
		return respondStoreError(c, "create "+h.lower(), err)
	}

	logger.InfoLog(ctx, "%s %d created", h.name, id)
	return respondJSON(c, http.StatusCreated, CreatedResponse{
		ID:      id,
		Message: h.name + " created successfully",
	})
}

func (h *EntityHandler[R, W]) UpdateHandler(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return h.notFound(c)
	}

	var req W
	if err := c.Bind(&req); err != nil {
		logger.WarnLog(ctx, "Rejected %s body: %v", h.lower(), err)
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	err := h.repo.Update(ctx, id, &req)
	if errors.Is(err, domain.ErrNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		return respondStoreError(c, "update "+h.lower(), err)
	}

	logger.InfoLog(ctx, "%s %d updated", h.name, id)
	return respondJSON(c, http.StatusOK, MessageResponse{Message: h.name + " updated successfully"})
}

func (h *EntityHandler[R, W]) DeleteHandler(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return h.notFound(c)
	}

	err := h.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return h.notFound(c)
	}
	if err != nil {
		return respondStoreError(c, "delete "+h.lower(), err)
	}

	logger.InfoLog(ctx, "%s %d deleted", h.name, id)
	return respondJSON(c, http.StatusOK, MessageResponse{Message: h.name + " deleted successfully"})
}

func (h *EntityHandler[R, W]) lower() string {
	return strings.ToLower(h.name)
}

func (h *EntityHandler[R, W]) plural() string {
	return h.lower() + "s"
}
