package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"appraisal/internal/platform/metrics"
	"appraisal/internal/transport/http/api"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger emits one access-log line per request and feeds the request
// counters.
func Logger(logger zerolog.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			if collector != nil {
				collector.Record(recorder.status, duration)
			}
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Dur("duration", duration).
				Str("requestId", GetRequestID(r.Context())).
				Msg("request")
		})
	}
}

// Recover turns a handler panic into a 500 instead of tearing down the
// connection.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Str("path", r.URL.Path).
						Msg("handler panic")
					api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
