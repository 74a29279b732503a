package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-aqi/aqi/internal/byteutil"
	"github.com/go-aqi/aqi/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func DecodeErr(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		syntaxErr      *json.SyntaxError
		unmarshalError *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		RespBadRequest(ctx, w, "malformed json at position %v", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		RespBadRequest(ctx, w, "malformed json")
	case errors.As(err, &unmarshalError):
		RespBadRequest(ctx, w, "invalid value %v at position %v", unmarshalError.Field, unmarshalError.Offset)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		RespBadRequest(ctx, w, "unknown field %s", fieldName)
	case errors.Is(err, io.EOF):
		RespBadRequest(ctx, w, "body must not be empty")
	case err.Error() == "http: request body too large":
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	default:
		RespInternalError(ctx, w, "failed to decode json %v", err)
	}
}

// The Resp* helpers answer {"error": <message>}; format and args build the
// message, which is JSON encoded as is.

func RespBadRequest(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	respError(ctx, w, http.StatusBadRequest, format, args...)
}

func RespNotFound(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	respError(ctx, w, http.StatusNotFound, format, args...)
}

func RespUnprocessable(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Error(msg)
	writeJSONError(ctx, w, http.StatusUnprocessableEntity, msg)
}

func RespMethodNotAllowed(ctx context.Context, w http.ResponseWriter, method string) {
	respError(ctx, w, http.StatusMethodNotAllowed, "method %v is not allowed", method)
}

func RespInternalError(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logging.FromContext(ctx).Errorf(format, args...)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func respError(ctx context.Context, w http.ResponseWriter, code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Debug(msg)
	writeJSONError(ctx, w, code, msg)
}

func writeJSONError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	RespJSON(ctx, w, code, errorResponse{Error: msg})
}

// RespJSON writes v with the given status code.
func RespJSON(ctx context.Context, w http.ResponseWriter, code int, v interface{}) {
	buf := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(buf)
	defer buf.Reset()

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		RespInternalError(ctx, w, "failed to encode output json %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
