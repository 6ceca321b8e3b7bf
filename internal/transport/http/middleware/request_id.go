package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"appraisal/internal/requestctx"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, honoring one supplied by the
// caller so a browser session can correlate its own traffic.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := requestctx.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
