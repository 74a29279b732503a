package importance

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/stretchr/testify/require"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg"></svg>`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "static")
	require.NoError(t, os.Mkdir(dir, 0o700))
	for _, name := range []string{"dt_feature_imp.svg", "rf_feature_imp.svg"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(svg), 0o600))
	}
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET=x\n"), 0o600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(root, "dt_aqi.json"), []byte("{}"), 0o600))

	h, err := NewHandler("/importance/", &predictor.Config{
		DecisionTreeImportance: "dt_feature_imp.svg",
		RandomForestImportance: "rf_feature_imp.svg",
		AdaBoostImportance:     "ad_feature_imp.svg",
		ImportanceDir:          dir,
	})
	require.NoError(t, err)
	return h
}

func TestHandler_ServeHTTP(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	tests := []struct {
		name     string
		method   string
		target   string
		expected int
		body     string
	}{
		{name: "decision_tree", method: http.MethodGet, target: "/importance/dt_feature_imp.svg", expected: http.StatusOK, body: svg},
		{name: "random_forest_head", method: http.MethodHead, target: "/importance/rf_feature_imp.svg", expected: http.StatusOK},
		{name: "configured_but_missing", method: http.MethodGet, target: "/importance/ad_feature_imp.svg", expected: http.StatusNotFound},
		{name: "dotenv", method: http.MethodGet, target: "/importance/.env", expected: http.StatusNotFound},
		{name: "listing", method: http.MethodGet, target: "/importance/", expected: http.StatusNotFound},
		{name: "parent", method: http.MethodGet, target: "/importance/../dt_aqi.json", expected: http.StatusNotFound},
		{name: "escaped_parent", method: http.MethodGet, target: "/importance/..%2Fdt_aqi.json", expected: http.StatusNotFound},
		{name: "post", method: http.MethodPost, target: "/importance/dt_feature_imp.svg", expected: http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		r := httptest.NewRequest(test.method, test.target, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != test.expected {
			t.Errorf("%s: status got: %d, expected: %d", test.name, w.Code, test.expected)
		}
		if test.body != "" && w.Body.String() != test.body {
			t.Errorf("%s: body got: %s, expected: %s", test.name, w.Body.String(), test.body)
		}
	}
}

func TestHandler_ContentType(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)
	r := httptest.NewRequest(http.MethodGet, "/importance/dt_feature_imp.svg", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type got: %s, expected: image/svg+xml", ct)
	}
}

func TestNewHandler_EmptyID(t *testing.T) {
	t.Parallel()
	_, err := NewHandler("/importance/", &predictor.Config{
		DecisionTreeImportance: "dt_feature_imp.svg",
		RandomForestImportance: "rf_feature_imp.svg",
		ImportanceDir:          "static",
	})
	if err == nil {
		t.Error("new handler got no error for a model without importance id")
	}
}
