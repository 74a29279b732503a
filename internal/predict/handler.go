package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/internal/dispatcher"
	"github.com/go-aqi/aqi/internal/httputil"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/predictor"
	"github.com/go-aqi/aqi/internal/service"
)

const maxBodyBytes = 64 * 1024

// Submitter is the operation the handler exposes.
type Submitter interface {
	Submit(ctx context.Context, req service.Request) (*dispatcher.Result, error)
}

type request struct {
	State  string  `json:"state"`
	County string  `json:"county"`
	CO     float64 `json:"co"`
	NO2    float64 `json:"no2"`
	O3     float64 `json:"o3"`
	PM25   float64 `json:"pm25"`
	PM10   float64 `json:"pm10"`
	Model  string  `json:"model"`
}

type response struct {
	ID         string              `json:"id"`
	State      string              `json:"state"`
	County     string              `json:"county"`
	Prediction float64             `json:"prediction"`
	Model      predictor.ModelType `json:"model"`
	Fallback   bool                `json:"fallback,omitempty"`
	Importance string              `json:"importance"`
}

func NewHandler(cfg *Config, submitter Submitter, importancePrefix string) (http.Handler, error) {
	return &handler{
		cfg:              cfg,
		submitter:        submitter,
		importancePrefix: importancePrefix,
	}, nil
}

type handler struct {
	submitter        Submitter
	cfg              *Config
	importancePrefix string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logging.FromContext(ctx).Debug("content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	result, err := h.submitter.Submit(ctx, service.Request(req))
	if err != nil {
		h.respErr(ctx, w, err)
		return
	}

	httputil.RespJSON(ctx, w, http.StatusOK, response{
		ID:         result.ID.String(),
		State:      req.State,
		County:     req.County,
		Prediction: result.Prediction,
		Model:      result.Model,
		Fallback:   result.Fallback,
		Importance: h.importancePrefix + result.Importance,
	})
}

func (h *handler) respErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuery), errors.Is(err, dispatcher.ErrUnknownModel):
		httputil.RespBadRequest(ctx, w, "%v", err)
	case errors.Is(err, dataset.ErrNotFound):
		httputil.RespNotFound(ctx, w, "%v", err)
	case errors.Is(err, dispatcher.ErrPredictionFailed):
		httputil.RespUnprocessable(ctx, w, "%v", err)
	default:
		httputil.RespInternalError(ctx, w, "predict processing error, %v", err)
	}
}
