package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithError(w, 404, "round not found", "", nil)

	if w.Code != 404 {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	var body errorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "round not found" {
		t.Errorf("unexpected error message: %s", body.Error)
	}
}

func TestRespondJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, 204, nil)

	if w.Code != 204 {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestDecodeJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","bogus":1}`))

	var dst struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &dst); err == nil {
		t.Error("expected error for unknown field")
	}
}
