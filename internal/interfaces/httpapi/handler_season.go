package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clubkit/roster-service/internal/usecase"
)

type createSeasonRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	StartsOn string `json:"startsOn" validate:"required,datetime=2006-01-02"`
	EndsOn   string `json:"endsOn" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasons.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSeasonDTOs(items))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	item, exists, err := h.seasons.GetByID(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSeasonDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startsOn, err := time.Parse(seasonDateLayout, req.StartsOn)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid startsOn date: %v", usecase.ErrInvalidInput, err))
		return
	}
	endsOn, err := time.Parse(seasonDateLayout, req.EndsOn)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid endsOn date: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.seasons.Create(ctx, usecase.CreateSeasonInput{
		Name:     req.Name,
		StartsOn: startsOn,
		EndsOn:   endsOn,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toSeasonDTO(created))
}

// CloseSeason is irreversible; a closed season rejects every lineup mutation
// that targets it.
func (h *Handler) CloseSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseSeason")
	defer span.End()

	closed, err := h.seasons.Close(ctx, r.PathValue("seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSeasonDTO(closed))
}
