package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/user"
	"github.com/clubkit/roster-service/internal/infrastructure/repository/memory"
	"github.com/clubkit/roster-service/internal/platform/cache"
	"github.com/clubkit/roster-service/internal/platform/logging"
	"github.com/clubkit/roster-service/internal/usecase"
)

const (
	testAdminToken  = "token-admin"
	testCoachToken  = "token-coach"
	testViewerToken = "token-viewer"
	testJobToken    = "job-secret"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := s.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	lineupRepo := memory.NewLineupRepository(memory.SeedLineups())
	categoryRepo := memory.NewCategoryRepository(memory.SeedCategories())
	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	memberRepo := memory.NewMemberRepository(memory.SeedMembers())
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewLineupService(lineupRepo, categoryRepo, seasonRepo, memberRepo, logger),
		usecase.NewCategoryService(categoryRepo, cache.NewStore(time.Minute)),
		usecase.NewSeasonService(seasonRepo, cache.NewStore(time.Minute)),
		usecase.NewRolloverService(lineupRepo, categoryRepo, seasonRepo, logger),
		logger,
	)

	verifier := stubVerifier{principals: map[string]user.Principal{
		testAdminToken:  {UserID: "user-admin", Email: "admin@club.test", Role: user.RoleAdmin},
		testCoachToken:  {UserID: "user-coach", Email: "coach@club.test", Role: user.RoleCoach},
		testViewerToken: {UserID: "user-viewer", Email: "viewer@club.test", Role: user.RoleViewer},
	}}

	router := NewRouter(handler, verifier, logger, RouterConfig{
		AllowedOrigins:   []string{"https://club.test"},
		InternalJobToken: testJobToken,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

func decodeEnvelope(t *testing.T, raw []byte) googleResponseEnvelope {
	t.Helper()

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, raw)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("apiVersion = %q, want %q", envelope.APIVersion, googleAPIVersion)
	}
	return envelope
}

func decodeData(t *testing.T, raw []byte, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, raw)
	}
	if err := sonic.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, envelope.Data)
	}
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", resp.StatusCode, raw)
	}

	var data map[string]string
	decodeData(t, raw, &data)
	if data["status"] != "ok" {
		t.Fatalf("status field = %q, want ok", data["status"])
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodGet, "/v1/categories", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list categories status = %d (body %s)", resp.StatusCode, raw)
	}
	var categories []categoryDTO
	decodeData(t, raw, &categories)
	if len(categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(categories))
	}

	resp, raw = doRequest(t, server, http.MethodGet, "/v1/seasons", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list seasons status = %d (body %s)", resp.StatusCode, raw)
	}
	var seasons []seasonDTO
	decodeData(t, raw, &seasons)
	if len(seasons) != 2 {
		t.Fatalf("got %d seasons, want 2", len(seasons))
	}

	resp, raw = doRequest(t, server, http.MethodGet, "/v1/categories/"+memory.CategoryIDU15+"/lineups", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list lineups status = %d (body %s)", resp.StatusCode, raw)
	}
	var lineups []lineupDTO
	decodeData(t, raw, &lineups)
	if len(lineups) != 1 || lineups[0].ID != memory.LineupIDU15First {
		t.Fatalf("lineups = %+v, want the seeded u15 lineup", lineups)
	}
}

func TestGetLineupNotFound(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodGet, "/v1/lineups/no-such-lineup", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", resp.StatusCode, raw)
	}

	envelope := decodeEnvelope(t, raw)
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("error body = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	server := newTestServer(t)

	body := map[string]any{"name": "U15 Second Team", "seasonId": memory.SeasonIDCurrent}

	resp, raw := doRequest(t, server, http.MethodPost, "/v1/categories/"+memory.CategoryIDU15+"/lineups", "", body)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401 (body %s)", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, server, http.MethodPost, "/v1/categories/"+memory.CategoryIDU15+"/lineups", testViewerToken, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer create status = %d, want 403 (body %s)", resp.StatusCode, raw)
	}
	envelope := decodeEnvelope(t, raw)
	if envelope.Error == nil || envelope.Error.Status != "PERMISSION_DENIED" {
		t.Fatalf("error body = %+v, want PERMISSION_DENIED", envelope.Error)
	}
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	server := newTestServer(t)

	body := map[string]any{"name": "Senior Women", "ageGroup": "senior", "gender": "female"}

	resp, raw := doRequest(t, server, http.MethodPost, "/v1/categories", testCoachToken, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("coach create category status = %d, want 403 (body %s)", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, server, http.MethodPost, "/v1/categories", testAdminToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create category status = %d, want 201 (body %s)", resp.StatusCode, raw)
	}
	var created categoryDTO
	decodeData(t, raw, &created)
	if created.Slug != "senior-women" {
		t.Fatalf("slug = %q, want senior-women", created.Slug)
	}
}

func TestLineupLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodPost, "/v1/categories/"+memory.CategoryIDU15+"/lineups", testCoachToken,
		map[string]any{"name": "U15 Cup Squad", "seasonId": memory.SeasonIDCurrent})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create lineup status = %d (body %s)", resp.StatusCode, raw)
	}
	var created lineupDTO
	decodeData(t, raw, &created)
	if created.ID == "" || created.CreatedBy != "user-coach" {
		t.Fatalf("created lineup = %+v, want non-empty id and coach as creator", created)
	}

	resp, raw = doRequest(t, server, http.MethodPost, "/v1/lineups/"+created.ID+"/players", testCoachToken,
		map[string]any{"memberId": "mem-u15-gk-01", "position": "goalkeeper", "jerseyNumber": 1, "isCaptain": true})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add player status = %d (body %s)", resp.StatusCode, raw)
	}
	var mutation mutationResultDTO
	decodeData(t, raw, &mutation)
	if !mutation.Applied || mutation.Summary.Goalkeepers != 1 {
		t.Fatalf("mutation = %+v, want applied with one goalkeeper", mutation)
	}
	// A one-player roster is below the field-player minimum.
	if len(mutation.Warnings) == 0 {
		t.Fatal("expected completeness warnings for a one-player roster")
	}

	resp, raw = doRequest(t, server, http.MethodPost, "/v1/lineups/"+created.ID+"/coaches", testCoachToken,
		map[string]any{"memberId": "mem-staff-01", "role": "head_coach"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add coach status = %d (body %s)", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, server, http.MethodGet, "/v1/lineups/"+created.ID+"/summary", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d (body %s)", resp.StatusCode, raw)
	}
	var summary summaryDTO
	decodeData(t, raw, &summary)
	if summary.Goalkeepers != 1 || summary.Coaches != 1 || summary.IsValid {
		t.Fatalf("summary = %+v, want 1 gk, 1 coach, invalid", summary)
	}

	resp, raw = doRequest(t, server, http.MethodDelete, "/v1/lineups/"+created.ID, testCoachToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d (body %s)", resp.StatusCode, raw)
	}

	resp, _ = doRequest(t, server, http.MethodGet, "/v1/lineups/"+created.ID, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", resp.StatusCode)
	}
}

func TestBlockedMutationReturnsRuleViolations(t *testing.T) {
	server := newTestServer(t)
	lineupPath := "/v1/lineups/" + memory.LineupIDU15First + "/players"

	resp, raw := doRequest(t, server, http.MethodPost, lineupPath, testCoachToken,
		map[string]any{"memberId": "mem-u15-gk-01", "position": "goalkeeper", "jerseyNumber": 1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first add status = %d (body %s)", resp.StatusCode, raw)
	}

	resp, raw = doRequest(t, server, http.MethodPost, lineupPath, testCoachToken,
		map[string]any{"memberId": "mem-u15-gk-02", "position": "goalkeeper", "jerseyNumber": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate jersey status = %d, want 400 (body %s)", resp.StatusCode, raw)
	}

	envelope := decodeEnvelope(t, raw)
	if envelope.Error == nil || envelope.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("error body = %+v, want FAILED_PRECONDITION", envelope.Error)
	}
	found := false
	for _, item := range envelope.Error.Errors {
		if item.Reason == roster.RuleDuplicateJersey {
			found = true
		}
	}
	if !found {
		t.Fatalf("error items = %+v, want a %s reason", envelope.Error.Errors, roster.RuleDuplicateJersey)
	}
}

func TestUnknownBodyFieldRejected(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodPost, "/v1/categories/"+memory.CategoryIDU15+"/lineups", testCoachToken,
		map[string]any{"name": "U15 Second", "seasonId": memory.SeasonIDCurrent, "surprise": true})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", resp.StatusCode, raw)
	}

	envelope := decodeEnvelope(t, raw)
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("error body = %+v, want INVALID_ARGUMENT", envelope.Error)
	}
}

func TestCloseSeasonBlocksMutations(t *testing.T) {
	server := newTestServer(t)

	resp, raw := doRequest(t, server, http.MethodPost, "/v1/seasons/"+memory.SeasonIDCurrent+"/close", testAdminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close season status = %d (body %s)", resp.StatusCode, raw)
	}
	var closed seasonDTO
	decodeData(t, raw, &closed)
	if !closed.IsClosed {
		t.Fatalf("season = %+v, want closed", closed)
	}

	resp, raw = doRequest(t, server, http.MethodPost, "/v1/lineups/"+memory.LineupIDU15First+"/players", testCoachToken,
		map[string]any{"memberId": "mem-u15-gk-01", "position": "goalkeeper"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("mutation in closed season status = %d, want 409 (body %s)", resp.StatusCode, raw)
	}
	envelope := decodeEnvelope(t, raw)
	if envelope.Error == nil || envelope.Error.Status != "ABORTED" {
		t.Fatalf("error body = %+v, want ABORTED", envelope.Error)
	}
}

func TestSeasonRolloverRoute(t *testing.T) {
	server := newTestServer(t)

	body := map[string]any{
		"sourceSeasonId": memory.SeasonIDCurrent,
		"targetSeasonId": memory.SeasonIDCurrent,
	}

	// Without the job token the route is unreachable regardless of role.
	resp, raw := doRequest(t, server, http.MethodPost, "/v1/internal/jobs/season-rollover", testAdminToken, body)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without job token = %d, want 401 (body %s)", resp.StatusCode, raw)
	}

	// Create an open target season first.
	resp, raw = doRequest(t, server, http.MethodPost, "/v1/seasons", testAdminToken,
		map[string]any{"name": "2026/2027", "startsOn": "2026-08-01", "endsOn": "2027-06-30"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create season status = %d (body %s)", resp.StatusCode, raw)
	}
	var target seasonDTO
	decodeData(t, raw, &target)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/internal/jobs/season-rollover", bytes.NewReader(mustMarshal(t, map[string]any{
		"sourceSeasonId": memory.SeasonIDCurrent,
		"targetSeasonId": target.ID,
	})))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Job-Token", testJobToken)

	resp2, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("rollover request failed: %v", err)
	}
	raw, err = io.ReadAll(resp2.Body)
	resp2.Body.Close()
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("rollover status = %d (body %s)", resp2.StatusCode, raw)
	}

	var result usecase.RolloverResult
	decodeData(t, raw, &result)
	if result.CategoryCount != 3 {
		t.Fatalf("category count = %d, want 3", result.CategoryCount)
	}
	if result.SuccessCount != 1 || result.SkippedCount != 2 {
		t.Fatalf("result = %+v, want 1 success and 2 skipped", result)
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()

	raw, err := sonic.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}
