package location

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/predictor"
)

type catalog map[string][]string

func (c catalog) States() []string {
	return []string{"AZ", "CA"}
}

func (c catalog) Counties(state string) ([]string, error) {
	counties, ok := c[state]
	if !ok {
		return nil, fmt.Errorf("state %q: %w", state, dataset.ErrNotFound)
	}
	return counties, nil
}

func (c catalog) Models() []predictor.ModelType {
	return predictor.ModelTypes
}

func TestHandlers(t *testing.T) {
	t.Parallel()
	c := catalog{"AZ": {"Maricopa"}, "CA": {"Fresno Co", "Los Angeles"}}
	tests := []struct {
		name     string
		handler  http.Handler
		method   string
		target   string
		expected int
		body     string
	}{
		{name: "states", handler: NewStatesHandler(c), method: http.MethodGet, target: "/states", expected: http.StatusOK, body: `{"states":["AZ","CA"]}`},
		{name: "states_post", handler: NewStatesHandler(c), method: http.MethodPost, target: "/states", expected: http.StatusMethodNotAllowed},
		{name: "counties", handler: NewCountiesHandler(c), method: http.MethodGet, target: "/counties?state=CA", expected: http.StatusOK, body: `{"state":"CA","counties":["Fresno Co","Los Angeles"]}`},
		{name: "counties_unknown", handler: NewCountiesHandler(c), method: http.MethodGet, target: "/counties?state=TX", expected: http.StatusNotFound, body: `{"error":"state \"TX\": not found"}`},
		{name: "counties_control_bytes", handler: NewCountiesHandler(c), method: http.MethodGet, target: "/counties?state=%00T%1F", expected: http.StatusNotFound, body: `{"error":"state \"\\x00T\\x1f\": not found"}`},
		{name: "counties_missing_state", handler: NewCountiesHandler(c), method: http.MethodGet, target: "/counties", expected: http.StatusBadRequest, body: `{"error":"state is required"}`},
		{name: "models", handler: NewModelsHandler(c), method: http.MethodGet, target: "/models", expected: http.StatusOK, body: `{"models":["Decision Tree","Random Forest","AdaBoost"]}`},
	}
	for _, test := range tests {
		r := httptest.NewRequest(test.method, test.target, nil)
		w := httptest.NewRecorder()
		test.handler.ServeHTTP(w, r)
		if w.Code != test.expected {
			t.Errorf("%s: status got: %d, expected: %d", test.name, w.Code, test.expected)
		}
		if test.body != "" && w.Body.String() != test.body {
			t.Errorf("%s: body got: %s, expected: %s", test.name, w.Body.String(), test.body)
		}
	}
}
