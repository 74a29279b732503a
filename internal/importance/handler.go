// Package importance serves the precomputed feature-importance images of the
// registered models.
package importance

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-aqi/aqi/internal/httputil"
	"github.com/go-aqi/aqi/internal/logging"
	"github.com/go-aqi/aqi/internal/predictor"
)

// NewHandler serves GET <prefix><id> for the importance ids configured in
// cfg. Any other path under prefix is not found; the directory is never
// listed.
func NewHandler(prefix string, cfg *predictor.Config) (http.Handler, error) {
	files := make(map[string]string, len(predictor.ModelTypes))
	for _, mt := range predictor.ModelTypes {
		id, err := cfg.ImportanceFor(mt)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, fmt.Errorf("model %s has no importance id", mt)
		}
		files[id] = filepath.Join(cfg.ImportanceDir, filepath.FromSlash(id))
	}
	return &handler{prefix: prefix, files: files}, nil
}

type handler struct {
	prefix string
	files  map[string]string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.RespMethodNotAllowed(ctx, w, r.Method)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, h.prefix)
	path, ok := h.files[id]
	if !ok {
		httputil.RespNotFound(ctx, w, "importance %q not found", id)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.FromContext(ctx).Warnf("importance %s is configured but %s is missing", id, path)
			httputil.RespNotFound(ctx, w, "importance %q not found", id)
			return
		}
		httputil.RespInternalError(ctx, w, "unable open importance %s: %v", id, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		httputil.RespNotFound(ctx, w, "importance %q not found", id)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
