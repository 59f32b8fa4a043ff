package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/securitysvcs/auth-service/internal/domain"
)

func TestWriteError_DomainErrorMapsKindAndCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/v1/login", nil)

	WriteError(rec, req, domain.ErrAccountLocked())

	if rec.Code != 403 {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "account_locked" {
		t.Fatalf("expected account_locked, got %q", body.Error.Code)
	}
}

func TestWriteError_InvalidCredentialsIs401(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/v1/login", nil)

	WriteError(rec, req, domain.ErrInvalidCredentialsAttempt(2, 3))

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body ErrorBody
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Error.Meta["attempt"] != "2" {
		t.Fatalf("expected attempt meta, got %+v", body.Error.Meta)
	}
}

func TestWriteError_UnknownErrorIsOpaque500(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	WriteError(rec, req, errors.New("pq: syntax error near SELECT"))

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("internal details leaked: %s", rec.Body.String())
	}
}

func TestDecodeJSON_RejectsTrailingValues(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"a":1}{"b":2}`))
	var dst map[string]int

	err := DecodeJSON(req, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_Valid(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"client1"}`))
	var dst struct {
		Username string `json:"username"`
	}

	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Username != "client1" {
		t.Fatalf("unexpected decode result: %+v", dst)
	}
}
