// ABOUTME: Request logging middleware for the preview file server
// ABOUTME: Tags every request with an ID and logs method, path, status and timing

package preview

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"releaseradar/core/interfaces"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.status = code
		sr.written = true
		sr.ResponseWriter.WriteHeader(code)
	}
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.WriteHeader(http.StatusOK)
	}
	return sr.ResponseWriter.Write(b)
}

// RequestLogging returns middleware that logs one line per served request.
// Each request gets a generated ID, echoed in the X-Request-ID response
// header so log lines can be matched to client-side traces.
func RequestLogging(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			fields := map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      recorder.status,
				"duration_ms": duration.Milliseconds(),
				"remote_ip":   clientIP(r),
			}

			logger.Info("request served", fields)
			if recorder.status >= http.StatusInternalServerError {
				logger.Error("request failed", fields)
			}
		})
	}
}
