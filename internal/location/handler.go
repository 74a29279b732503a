// Package location serves the categorical domain that drives the state and
// county selectors.
package location

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/httputil"
	"github.com/go-aqi/aqi/internal/predictor"
)

type Catalog interface {
	States() []string
	Counties(state string) ([]string, error)
	Models() []predictor.ModelType
}

type statesResponse struct {
	States []string `json:"states"`
}

type countiesResponse struct {
	State    string   `json:"state"`
	Counties []string `json:"counties"`
}

type modelsResponse struct {
	Models []predictor.ModelType `json:"models"`
}

// NewStatesHandler serves GET /states.
func NewStatesHandler(catalog Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.RespMethodNotAllowed(r.Context(), w, r.Method)
			return
		}
		httputil.RespJSON(r.Context(), w, http.StatusOK, statesResponse{States: catalog.States()})
	})
}

// NewCountiesHandler serves GET /counties?state=<label>.
func NewCountiesHandler(catalog Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if r.Method != http.MethodGet {
			httputil.RespMethodNotAllowed(ctx, w, r.Method)
			return
		}
		state := r.URL.Query().Get("state")
		if state == "" {
			httputil.RespBadRequest(ctx, w, "state is required")
			return
		}
		counties, err := catalog.Counties(state)
		if err != nil {
			respErr(ctx, w, err)
			return
		}
		httputil.RespJSON(ctx, w, http.StatusOK, countiesResponse{State: state, Counties: counties})
	})
}

// NewModelsHandler serves GET /models.
func NewModelsHandler(catalog Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.RespMethodNotAllowed(r.Context(), w, r.Method)
			return
		}
		httputil.RespJSON(r.Context(), w, http.StatusOK, modelsResponse{Models: catalog.Models()})
	})
}

func respErr(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, dataset.ErrNotFound) {
		httputil.RespNotFound(ctx, w, "%v", err)
		return
	}
	httputil.RespInternalError(ctx, w, "counties lookup error, %v", err)
}
