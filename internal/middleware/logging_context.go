package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"limelink-mcp/pkg/logging/logging"
)

// sessionHeader carries the streamable HTTP session between requests.
const sessionHeader = "Mcp-Session-Id"

// LoggingContext attaches a request-scoped logger to the context, tagged
// with the chi request id and the MCP session when present.
func LoggingContext(baseLogger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_ip", r.RemoteAddr),
			}
			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				fields = append(fields, zap.String("request_id", reqID))
			}
			if session := r.Header.Get(sessionHeader); session != "" {
				fields = append(fields, zap.String("mcp_session", session))
			}

			ctx := logging.WithLogger(r.Context(), baseLogger.With(fields...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
