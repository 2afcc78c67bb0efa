package httpapi

import (
	"net/http"

	"github.com/clubkit/roster-service/internal/usecase"
)

type seasonRolloverRequest struct {
	SourceSeasonID string   `json:"sourceSeasonId" validate:"required"`
	TargetSeasonID string   `json:"targetSeasonId" validate:"required"`
	CategoryIDs    []string `json:"categoryIds" validate:"omitempty,dive,required"`
	MaxWorkers     int      `json:"maxWorkers" validate:"omitempty,min=1,max=16"`
	DryRun         bool     `json:"dryRun"`
}

// SeasonRollover copies every selected category's lineups from one season
// into another. The route is reachable only with the internal job token.
func (h *Handler) SeasonRollover(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeasonRollover")
	defer span.End()

	var req seasonRolloverRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rollover.Run(ctx, usecase.RolloverInput{
		SourceSeasonID: req.SourceSeasonID,
		TargetSeasonID: req.TargetSeasonID,
		CategoryIDs:    req.CategoryIDs,
		MaxWorkers:     req.MaxWorkers,
		TriggeredBy:    requestActor(ctx, "internal-job"),
		DryRun:         req.DryRun,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
