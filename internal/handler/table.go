// Package handler defines HTTP handlers for the table registry.  Listing
// and detail endpoints are available to every authenticated requester;
// create, patch, delete and seed are registered under the admin group.
package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

// TableHandler groups the repositories needed for table management.
type TableHandler struct {
	TableRepo *repository.TableRepo
}

// NewTableHandler constructs a TableHandler and panics if the repository is nil.
func NewTableHandler(tableRepo *repository.TableRepo) *TableHandler {
	if tableRepo == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{TableRepo: tableRepo}
}

// ListTables handles GET /v1/tables.  Order follows insertion (by ID).
func (h *TableHandler) ListTables(c echo.Context) error {
	tables, err := h.TableRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tables})
}

// GetTable handles GET /v1/tables/:id.
func (h *TableHandler) GetTable(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	table, err := h.TableRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table"})
	}
	return c.JSON(http.StatusOK, table)
}

// CreateTable handles POST /v1/admin/tables.  Name is required and
// capacity must be a positive integer; names are not checked for
// uniqueness.
func (h *TableHandler) CreateTable(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Capacity uint32 `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required and capacity must be greater than zero"})
	}
	table := &model.Table{Name: name, Capacity: body.Capacity}
	if err := h.TableRepo.Create(c.Request().Context(), table); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create table"})
	}
	return c.JSON(http.StatusCreated, table)
}

// UpdateTable handles PATCH /v1/admin/tables/:id.  Provided fields are
// merged over the stored record; absent fields keep their value.
func (h *TableHandler) UpdateTable(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name     *string `json:"name"`
		Capacity *uint32 `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	table, err := h.TableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table"})
	}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		table.Name = name
	}
	if body.Capacity != nil {
		if *body.Capacity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be greater than zero"})
		}
		table.Capacity = *body.Capacity
	}

	if err := h.TableRepo.Update(ctx, table); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update table"})
	}
	updated, err := h.TableRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load table"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTable handles DELETE /v1/admin/tables/:id.  A table with a
// reservation starting in the future cannot be removed; this protects
// active bookings from being orphaned.  Returns 409 in that case, 404
// when the table does not exist and 204 on success.
func (h *TableHandler) DeleteTable(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.TableRepo.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table has upcoming reservations"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// SeedTables handles POST /v1/admin/tables/seed.  It inserts the canned
// default tables into an empty registry and reports how many rows were
// added; on a non-empty registry it is a no-op returning zero.
func (h *TableHandler) SeedTables(c echo.Context) error {
	inserted, err := h.TableRepo.SeedDefaults(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"inserted": inserted})
}
