package gatekeeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/clubkit/roster-service/internal/domain/user"
	"github.com/clubkit/roster-service/internal/platform/logging"
	"github.com/clubkit/roster-service/internal/platform/resilience"
	"github.com/clubkit/roster-service/internal/usecase"
)

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Fatalf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "coach@club.example",
			"role":    "coach",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		AdminKey:       "admin-secret",
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Role != user.RoleCoach {
		t.Fatalf("unexpected role: %s", principal.Role)
	}
	if !principal.CanManageLineups() {
		t.Fatal("coach role must be able to manage lineups")
	}
}

func TestClientVerifyAccessToken_InactiveTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_UnknownRoleDowngradesToViewer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-9",
			"role":    "superuser",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if principal.Role != user.RoleViewer {
		t.Fatalf("unexpected role: %s", principal.Role)
	}
	if principal.CanManageLineups() {
		t.Fatal("viewer must not manage lineups")
	}
}

func TestClientVerifyAccessToken_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{
		BaseURL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		// Distinct tokens so singleflight does not collapse the calls.
		token := "token-" + string(rune('a'+i))
		if _, err := client.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}

	before := calls.Load()
	_, err := client.VerifyAccessToken(context.Background(), "token-z")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open circuit, got %v", err)
	}
	if calls.Load() != before {
		t.Fatal("open circuit must not reach the account service")
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, Config{BaseURL: "http://localhost:0"}, logging.NewNop())
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
