package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/securitysvcs/auth-service/internal/application/auth"
	"github.com/securitysvcs/auth-service/internal/domain"
	"github.com/securitysvcs/auth-service/internal/infrastructure/memory"
	"github.com/securitysvcs/auth-service/internal/infrastructure/security"
)

// newTestService wires a real service against in-memory infrastructure with
// a cheap bcrypt cost so handler tests stay fast.
func newTestService(t *testing.T) (*auth.Service, *memory.AccountRepo) {
	t.Helper()

	repo := memory.NewAccountRepo()
	svc := auth.NewService(
		repo,
		security.NewBcryptHasher(4),
		memory.NewEventRecorder(),
		memory.NewNoopPublisher(),
	)
	return svc, repo
}

func seedTestAccount(t *testing.T, svc *auth.Service, username, password string, role domain.Role) {
	t.Helper()

	if _, err := svc.RegisterWithRole(context.Background(), username, password, password, role); err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func doJSONTo(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string            `json:"code"`
			Meta map[string]string `json:"meta"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}
