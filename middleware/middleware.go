package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	contextRequestID contextKey = "RequestID"
	// HTTPHeaderRequestID is reused if the client sends it, and always set
	// on the response.
	HTTPHeaderRequestID = "X-Request-Id"
)

// AddLogging attaches a request id and a logger carrying it to the request
// context.
func AddLogging(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HTTPHeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		logger := log.With().Str("requestID", id).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, contextRequestID, id)
		r = r.WithContext(ctx)
		if w != nil {
			w.Header().Set(HTTPHeaderRequestID, id)
		}
		logger.Debug().Msgf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

func AddAll(next http.Handler) http.Handler {
	return AddLogging(next)
}

func CtxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextRequestID).(string); ok {
		return id
	}
	return ""
}

func CtxNewWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextRequestID, id)
}
