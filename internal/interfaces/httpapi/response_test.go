package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/usecase"
)

func TestMapErrorTable(t *testing.T) {
	cases := []struct {
		err        error
		wantHTTP   int
		wantStatus string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{usecase.ErrForbidden, http.StatusForbidden, "PERMISSION_DENIED"},
		{usecase.ErrSeasonClosed, http.StatusConflict, "ABORTED"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{roster.ErrDuplicateJersey, http.StatusBadRequest, "FAILED_PRECONDITION"},
		{fmt.Errorf("wrapped: %w", usecase.ErrSeasonClosed), http.StatusConflict, "ABORTED"},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		mapped := mapError(t.Context(), tc.err)
		if mapped.HTTPStatus != tc.wantHTTP || mapped.Status != tc.wantStatus {
			t.Fatalf("mapError(%v) = %+v, want %d/%s", tc.err, mapped, tc.wantHTTP, tc.wantStatus)
		}
	}
}

func TestWriteRuleViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	writeRuleViolations(t.Context(), rec, []roster.Violation{
		{Rule: roster.RuleGoalkeeperCap, Message: "goalkeeper limit reached", Current: 2, Limit: 2},
		{Rule: roster.RuleDuplicateJersey, Message: "jersey number 7 already taken", Current: 1, Limit: 1},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error == nil {
		t.Fatal("expected error body")
	}
	if envelope.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("status = %q, want FAILED_PRECONDITION", envelope.Error.Status)
	}
	if len(envelope.Error.Errors) != 2 {
		t.Fatalf("got %d error items, want 2", len(envelope.Error.Errors))
	}
	if envelope.Error.Errors[0].Reason != roster.RuleGoalkeeperCap {
		t.Fatalf("first reason = %q, want %q", envelope.Error.Errors[0].Reason, roster.RuleGoalkeeperCap)
	}
	if envelope.Error.Message != "goalkeeper limit reached" {
		t.Fatalf("message = %q, want the first violation message", envelope.Error.Message)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(t.Context(), rec, http.StatusCreated, map[string]string{"id": "lineup-1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content-type = %q", got)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.APIVersion != "2.0" || envelope.Data["id"] != "lineup-1" {
		t.Fatalf("envelope = %+v", envelope)
	}
}
