package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/usecase"
)

type createLineupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
	SeasonID    string `json:"seasonId" validate:"required"`
}

type updateLineupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

type addPlayerRequest struct {
	MemberID      string `json:"memberId" validate:"required"`
	Position      string `json:"position" validate:"required,oneof=goalkeeper field_player"`
	JerseyNumber  *int   `json:"jerseyNumber" validate:"omitempty,min=1,max=99"`
	IsCaptain     bool   `json:"isCaptain"`
	IsViceCaptain bool   `json:"isViceCaptain"`
}

type updatePlayerRequest struct {
	Position      *string `json:"position" validate:"omitempty,oneof=goalkeeper field_player"`
	JerseyNumber  *int    `json:"jerseyNumber" validate:"omitempty,min=1,max=99"`
	ClearJersey   bool    `json:"clearJersey"`
	IsCaptain     *bool   `json:"isCaptain"`
	IsViceCaptain *bool   `json:"isViceCaptain"`
	IsActive      *bool   `json:"isActive"`
}

type addCoachRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=head_coach assistant_coach team_manager"`
}

type updateCoachRequest struct {
	Role *string `json:"role" validate:"omitempty,oneof=head_coach assistant_coach team_manager"`
}

func (h *Handler) ListLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineups")
	defer span.End()

	categoryID := r.PathValue("categoryID")
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))
	activeOnly := r.URL.Query().Get("active_only") == "true"

	items, err := h.lineups.ListLineups(ctx, categoryID, seasonID, activeOnly)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLineupDTOs(items))
}

func (h *Handler) CreateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLineup")
	defer span.End()

	var req createLineupRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.lineups.CreateLineup(ctx, usecase.CreateLineupInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  r.PathValue("categoryID"),
		SeasonID:    req.SeasonID,
		CreatedBy:   requestActor(ctx, ""),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toLineupDTO(created))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	snapshot, exists, err := h.lineups.GetLineup(ctx, r.PathValue("lineupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSnapshotDTO(snapshot))
}

func (h *Handler) UpdateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineup")
	defer span.End()

	var req updateLineupRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.lineups.UpdateLineup(ctx, r.PathValue("lineupID"), roster.LineupUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLineupDTO(updated))
}

func (h *Handler) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLineup")
	defer span.End()

	if err := h.lineups.DeleteLineup(ctx, r.PathValue("lineupID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) GetLineupSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupSummary")
	defer span.End()

	summary, exists, err := h.lineups.GetSummary(ctx, r.PathValue("lineupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSummaryDTO(summary))
}

func (h *Handler) ListLineupPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineupPlayers")
	defer span.End()

	snapshot, exists, err := h.lineups.GetLineup(ctx, r.PathValue("lineupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPlayerDTOs(snapshot.Players))
}

func (h *Handler) AddLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddLineupPlayer")
	defer span.End()

	var req addPlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineups.AddPlayer(ctx, usecase.AddPlayerInput{
		LineupID:      r.PathValue("lineupID"),
		MemberID:      req.MemberID,
		Position:      req.Position,
		JerseyNumber:  req.JerseyNumber,
		IsCaptain:     req.IsCaptain,
		IsViceCaptain: req.IsViceCaptain,
		AddedBy:       requestActor(ctx, ""),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusCreated)
}

func (h *Handler) UpdateLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineupPlayer")
	defer span.End()

	var req updatePlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update := roster.PlayerUpdate{
		JerseyNumber:  req.JerseyNumber,
		ClearJersey:   req.ClearJersey,
		IsCaptain:     req.IsCaptain,
		IsViceCaptain: req.IsViceCaptain,
		IsActive:      req.IsActive,
	}
	if req.Position != nil {
		position := roster.Position(*req.Position)
		update.Position = &position
	}

	result, err := h.lineups.EditPlayer(ctx, r.PathValue("lineupID"), r.PathValue("memberID"), update)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusOK)
}

func (h *Handler) RemoveLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLineupPlayer")
	defer span.End()

	result, err := h.lineups.RemovePlayer(ctx, r.PathValue("lineupID"), r.PathValue("memberID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusOK)
}

func (h *Handler) ListLineupCoaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineupCoaches")
	defer span.End()

	snapshot, exists, err := h.lineups.GetLineup(ctx, r.PathValue("lineupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, usecase.ErrNotFound)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCoachDTOs(snapshot.Coaches))
}

func (h *Handler) AddLineupCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddLineupCoach")
	defer span.End()

	var req addCoachRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineups.AddCoach(ctx, usecase.AddCoachInput{
		LineupID: r.PathValue("lineupID"),
		MemberID: req.MemberID,
		Role:     req.Role,
		AddedBy:  requestActor(ctx, ""),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusCreated)
}

func (h *Handler) UpdateLineupCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineupCoach")
	defer span.End()

	var req updateCoachRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var update roster.CoachUpdate
	if req.Role != nil {
		role := roster.CoachRole(*req.Role)
		update.Role = &role
	}

	result, err := h.lineups.EditCoach(ctx, r.PathValue("lineupID"), r.PathValue("memberID"), update)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusOK)
}

func (h *Handler) RemoveLineupCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLineupCoach")
	defer span.End()

	result, err := h.lineups.RemoveCoach(ctx, r.PathValue("lineupID"), r.PathValue("memberID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.writeMutationResult(ctx, w, result, http.StatusOK)
}

func (h *Handler) writeMutationResult(ctx context.Context, w http.ResponseWriter, result usecase.MutationResult, appliedStatus int) {
	if !result.Applied {
		writeRuleViolations(ctx, w, result.Errors)
		return
	}
	writeSuccess(ctx, w, appliedStatus, toMutationResultDTO(result))
}
