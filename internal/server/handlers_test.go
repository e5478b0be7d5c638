package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// authedRequest builds a request with the user id already in context and the
// given chi URL params, bypassing the JWT middleware.
func authedRequest(t *testing.T, method, target, body string, userID int64, params map[string]string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	ctx := context.WithValue(req.Context(), userIDKey, userID)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return m
}

// TestRecordSetRejectsInvalidPayloads verifies that malformed set payloads
// are rejected before any storage access.
func TestRecordSetRejectsInvalidPayloads(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name string
		body string
	}{
		{"missing exercise id", `{"numero_serie":1,"repeticoes":8}`},
		{"missing set number", `{"id_exercicio":1,"repeticoes":8}`},
		{"strength without reps", `{"id_exercicio":1,"numero_serie":1,"peso":60}`},
		{"cardio without time", `{"id_exercicio":1,"numero_serie":1,"distancia_km":5}`},
		{"cardio zero distance", `{"id_exercicio":1,"numero_serie":1,"distancia_km":0,"tempo_segundos":900}`},
		{"not JSON", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(t, http.MethodPost, "/api/treino/sessao/5/serie", tt.body, 1,
				map[string]string{"sessaoId": "5"})
			rec := httptest.NewRecorder()
			s.handleRecordSet(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["erro"] == "" {
				t.Error("expected erro message in response")
			}
		})
	}
}

// TestRecordSetRejectsBadSessionID verifies that a non-numeric session id is
// a client error.
func TestRecordSetRejectsBadSessionID(t *testing.T) {
	s := &Server{}
	req := authedRequest(t, http.MethodPost, "/api/treino/sessao/abc/serie",
		`{"id_exercicio":1,"numero_serie":1,"repeticoes":8}`, 1,
		map[string]string{"sessaoId": "abc"})
	rec := httptest.NewRecorder()
	s.handleRecordSet(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestSaveSessionRejectsMissingFields verifies the batch endpoint's field
// validation.
func TestSaveSessionRejectsMissingFields(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing workout", `{"userId":1,"duracao_segundos":600,"series":[{"id_exercicio":1,"numero_serie":1,"repeticoes":8}]}`},
		{"missing duration", `{"userId":1,"treinoId":2,"series":[{"id_exercicio":1,"numero_serie":1,"repeticoes":8}]}`},
		{"no sets", `{"userId":1,"treinoId":2,"duracao_segundos":600,"series":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(t, http.MethodPost, "/api/treino/sessao/guardar", tt.body, 1, nil)
			rec := httptest.NewRecorder()
			s.handleSaveSession(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestSaveSessionRejectsForeignUser verifies that a batch body claiming
// another user id is answered with not-found, same as any ownership failure.
func TestSaveSessionRejectsForeignUser(t *testing.T) {
	s := &Server{}
	body := `{"userId":7,"treinoId":2,"duracao_segundos":600,"series":[{"id_exercicio":1,"numero_serie":1,"repeticoes":8}]}`
	req := authedRequest(t, http.MethodPost, "/api/treino/sessao/guardar", body, 1, nil)
	rec := httptest.NewRecorder()
	s.handleSaveSession(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestCreateWorkoutValidation verifies workout creation input checks.
func TestCreateWorkoutValidation(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"missing exercises", `{"userId":1,"nome":"Push Day"}`, http.StatusBadRequest},
		{"blank name", `{"userId":1,"nome":"   ","exercicios":[1,2]}`, http.StatusBadRequest},
		{"bad date", `{"userId":1,"nome":"Push Day","exercicios":[1],"dataRealizacao":"31-08-2026"}`, http.StatusBadRequest},
		{"foreign user", `{"userId":9,"nome":"Push Day","exercicios":[1]}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(t, http.MethodPost, "/api/treino", tt.body, 1, nil)
			rec := httptest.NewRecorder()
			s.handleCreateWorkout(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

// TestPathUserIDMismatch verifies that a {userId} segment not matching the
// token is treated as not-found rather than leaking existence.
func TestPathUserIDMismatch(t *testing.T) {
	s := &Server{}
	req := authedRequest(t, http.MethodGet, "/api/streak/9", "", 1,
		map[string]string{"userId": "9"})
	rec := httptest.NewRecorder()
	s.handleStreak(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestFinalizeRejectsBadBody verifies JSON decoding failures on finalize.
func TestFinalizeRejectsBadBody(t *testing.T) {
	s := &Server{}
	req := authedRequest(t, http.MethodPost, "/api/treino/sessao/5/finalizar", `{`, 1,
		map[string]string{"sessaoId": "5"})
	rec := httptest.NewRecorder()
	s.handleFinalizeSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
