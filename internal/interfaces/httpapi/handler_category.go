package httpapi

import (
	"net/http"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/usecase"
)

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
	AgeGroup    string `json:"ageGroup" validate:"max=30"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female mixed"`
	SortOrder   int    `json:"sortOrder" validate:"min=0"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	AgeGroup    *string `json:"ageGroup" validate:"omitempty,max=30"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female mixed"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	items, err := h.categories.List(ctx, activeOnly)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTOs(items))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCategory")
	defer span.End()

	item, exists, err := h.categories.GetByID(ctx, r.PathValue("categoryID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTO(item))
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCategory")
	defer span.End()

	var req createCategoryRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.categories.Create(ctx, usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		AgeGroup:    req.AgeGroup,
		Gender:      req.Gender,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toCategoryDTO(created))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCategory")
	defer span.End()

	var req updateCategoryRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.categories.Update(ctx, r.PathValue("categoryID"), category.Update{
		Name:        req.Name,
		Description: req.Description,
		AgeGroup:    req.AgeGroup,
		Gender:      req.Gender,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTO(updated))
}

// DeactivateCategory soft-deletes: the category disappears from active
// listings but existing lineups keep referencing it.
func (h *Handler) DeactivateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeactivateCategory")
	defer span.End()

	updated, err := h.categories.Deactivate(ctx, r.PathValue("categoryID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTO(updated))
}
