package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionsHandler_ListEmpty(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionsHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Sessions) != 0 {
		t.Errorf("expected no sessions, got %d", len(response.Sessions))
	}
}

func TestSessionsHandler_ListWithGestures(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionsHandler(s)

	session, err := s.Sessions().Start()
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	for _, label := range []string{"open", "pinch", "open"} {
		if err := s.Sessions().LogGesture(session.ID, label); err != nil {
			t.Fatalf("failed to log gesture: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(response.Sessions))
	}

	got := response.Sessions[0]
	if got.ID != session.ID {
		t.Errorf("expected session id %q, got %q", session.ID, got.ID)
	}
	if got.GestureCounts["open"] != 2 || got.GestureCounts["pinch"] != 1 {
		t.Errorf("unexpected gesture counts: %v", got.GestureCounts)
	}
}

func TestSessionsHandler_LimitQuery(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionsHandler(s)

	for i := 0; i < 3; i++ {
		if _, err := s.Sessions().Start(); err != nil {
			t.Fatalf("failed to start session: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?limit=2", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(response.Sessions))
	}
}

func TestSessionsHandler_InvalidLimit(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionsHandler(s)

	for _, raw := range []string{"abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions?limit="+raw, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: expected status %d, got %d", raw, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestSessionsHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionsHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
