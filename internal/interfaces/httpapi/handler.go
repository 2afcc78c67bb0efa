package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/clubkit/roster-service/internal/platform/logging"
	"github.com/clubkit/roster-service/internal/usecase"
)

// Handler hosts all HTTP endpoints. Each method decodes and validates its
// request, delegates to a use case service, and writes a google-style
// response envelope.
type Handler struct {
	lineups    *usecase.LineupService
	categories *usecase.CategoryService
	seasons    *usecase.SeasonService
	rollover   *usecase.RolloverService
	logger     *logging.Logger
	validate   *validator.Validate
}

func NewHandler(
	lineups *usecase.LineupService,
	categories *usecase.CategoryService,
	seasons *usecase.SeasonService,
	rollover *usecase.RolloverService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		lineups:    lineups,
		categories: categories,
		seasons:    seasons,
		rollover:   rollover,
		logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validate.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func decodeRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// requestActor resolves who performs a mutation for audit fields. Internal
// job routes carry no principal; those callers pass a fallback.
func requestActor(ctx context.Context, fallback string) string {
	if principal, ok := principalFromContext(ctx); ok && principal.UserID != "" {
		return principal.UserID
	}
	return fallback
}
