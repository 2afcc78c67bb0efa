package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Public routes are read-only; any caller can inspect the catalog and
// published lineups.
func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/categories/{categoryID}", handler.GetCategory)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)

	mux.HandleFunc("GET /v1/categories/{categoryID}/lineups", handler.ListLineups)
	mux.HandleFunc("GET /v1/lineups/{lineupID}", handler.GetLineup)
	mux.HandleFunc("GET /v1/lineups/{lineupID}/summary", handler.GetLineupSummary)
	mux.HandleFunc("GET /v1/lineups/{lineupID}/players", handler.ListLineupPlayers)
	mux.HandleFunc("GET /v1/lineups/{lineupID}/coaches", handler.ListLineupCoaches)
}

// Management routes require a coach or admin principal.
func registerManagementRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	manage := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireManager(verifier, fn))
	}

	manage("POST /v1/categories/{categoryID}/lineups", handler.CreateLineup)
	manage("PATCH /v1/lineups/{lineupID}", handler.UpdateLineup)
	manage("DELETE /v1/lineups/{lineupID}", handler.DeleteLineup)

	manage("POST /v1/lineups/{lineupID}/players", handler.AddLineupPlayer)
	manage("PATCH /v1/lineups/{lineupID}/players/{memberID}", handler.UpdateLineupPlayer)
	manage("DELETE /v1/lineups/{lineupID}/players/{memberID}", handler.RemoveLineupPlayer)

	manage("POST /v1/lineups/{lineupID}/coaches", handler.AddLineupCoach)
	manage("PATCH /v1/lineups/{lineupID}/coaches/{memberID}", handler.UpdateLineupCoach)
	manage("DELETE /v1/lineups/{lineupID}/coaches/{memberID}", handler.RemoveLineupCoach)
}

// Admin routes cover the category and season catalog.
func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdmin(verifier, fn))
	}

	admin("POST /v1/categories", handler.CreateCategory)
	admin("PATCH /v1/categories/{categoryID}", handler.UpdateCategory)
	admin("DELETE /v1/categories/{categoryID}", handler.DeactivateCategory)

	admin("POST /v1/seasons", handler.CreateSeason)
	admin("POST /v1/seasons/{seasonID}/close", handler.CloseSeason)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, token string) {
	mux.Handle("POST /v1/internal/jobs/season-rollover",
		RequireInternalJobToken(token, http.HandlerFunc(handler.SeasonRollover)))
}
