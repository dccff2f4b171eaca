package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondWithErrorEncodesMessage(t *testing.T) {
	msg := `Invalid token: unexpected "kid" header`

	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusUnauthorized, msg)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	if body["error"] != msg {
		t.Errorf("error = %q, want %q", body["error"], msg)
	}
}

func TestGetClerkIDMissing(t *testing.T) {
	if _, ok := GetClerkID(context.Background()); ok {
		t.Error("empty context should not carry a clerk ID")
	}
}
