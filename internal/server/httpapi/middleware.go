package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/coursework/internal/logging"
)

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// requestLogger assigns every request a uuid, echoes it in X-Request-ID and
// logs one line when the handler returns. 5xx are logged as errors and 4xx
// as warnings.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := r.Context()

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			args := []any{
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"bytes", rec.written,
				"duration", time.Since(start),
			}

			switch {
			case rec.statusCode >= 500:
				logger.Error(ctx, "HTTP request", args...)
			case rec.statusCode >= 400:
				logger.Warn(ctx, "HTTP request", args...)
			default:
				logger.Info(ctx, "HTTP request", args...)
			}
		})
	}
}
