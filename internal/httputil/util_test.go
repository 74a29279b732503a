package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeErr(t *testing.T) {
	t.Parallel()
	var target struct {
		State string  `json:"state"`
		CO    float64 `json:"co"`
	}
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "syntax", body: `{"state": }`, expected: http.StatusBadRequest},
		{name: "type", body: `{"co": "high"}`, expected: http.StatusBadRequest},
		{name: "unknown_field", body: `{"city": "x"}`, expected: http.StatusBadRequest},
		{name: "empty", body: ``, expected: http.StatusBadRequest},
		{name: "truncated", body: `{"state": "CA"`, expected: http.StatusBadRequest},
	}
	for _, test := range tests {
		d := json.NewDecoder(strings.NewReader(test.body))
		d.DisallowUnknownFields()
		err := d.Decode(&target)
		if err == nil {
			t.Fatalf("%s: decode got no error", test.name)
		}
		w := httptest.NewRecorder()
		DecodeErr(context.Background(), w, err)
		if w.Code != test.expected {
			t.Errorf("%s: status got: %d, expected: %d", test.name, w.Code, test.expected)
		}
	}

	w := httptest.NewRecorder()
	DecodeErr(context.Background(), w, errors.New("boom"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("unknown decode error status got: %d, expected: %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRespJSON(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	RespJSON(context.Background(), w, http.StatusOK, map[string]string{"state": "CA"})
	if w.Code != http.StatusOK {
		t.Errorf("status got: %d, expected: %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != `{"state":"CA"}` {
		t.Errorf("body got: %s, expected: %s", got, `{"state":"CA"}`)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type got: %s", ct)
	}
}

func TestRespBadRequest_EscapesMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		message string
	}{
		{name: "plain", message: "state is required"},
		{name: "quotes", message: `unknown county "Los Angeles"`},
		{name: "control_bytes", message: "state \x00\x1f\x7f"},
		{name: "percent", message: "co 100%"},
	}
	for _, test := range tests {
		w := httptest.NewRecorder()
		RespBadRequest(context.Background(), w, "%s", test.message)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got: %d, expected: %d", test.name, w.Code, http.StatusBadRequest)
		}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: body %q is not json: %v", test.name, w.Body.String(), err)
		}
		if body.Error != test.message {
			t.Errorf("%s: error got: %q, expected: %q", test.name, body.Error, test.message)
		}
	}
}
