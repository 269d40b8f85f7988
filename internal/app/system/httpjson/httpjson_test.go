package httpjson_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest, "validation"},
		{apperr.NotFound("missing"), http.StatusNotFound, "not_found"},
		{apperr.Permission("denied"), http.StatusForbidden, "permission_denied"},
		{apperr.Constraint("duplicate"), http.StatusConflict, "constraint_violation"},
		{apperr.Infra("down", errors.New("dial tcp")), http.StatusServiceUnavailable, "infrastructure"},
		{errors.New("surprise"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		httpjson.Error(rec, zap.NewNop(), tc.err)

		if rec.Code != tc.status {
			t.Errorf("%v: status got %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Kind != tc.kind {
			t.Errorf("%v: kind got %q, want %q", tc.err, body.Kind, tc.kind)
		}
	}
}

func TestError_KindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler context: %w", apperr.Constraint("duplicate"))
	rec := httptest.NewRecorder()
	httpjson.Error(rec, zap.NewNop(), wrapped)
	if rec.Code != http.StatusConflict {
		t.Errorf("wrapped constraint: got %d, want 409", rec.Code)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"content":"hi","extra":true}`))
	var dst struct {
		Content string `json:"content"`
	}
	err := httpjson.Decode(req, &dst)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("unknown field: got %v, want validation error", err)
	}
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Respond(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"id":"abc"`) {
		t.Errorf("body: got %s", rec.Body.String())
	}
}
