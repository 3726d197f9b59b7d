package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"limelink-mcp/pkg/logging/logging"
)

// Recoverer turns a handler panic into a logged JSON-RPC internal error.
// http.ErrAbortHandler is re-panicked so net/http can drop the connection.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logging.L(r.Context()).Error("panic recovered",
					zap.Any("error", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				writeRPCError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
