package middleware

import (
	"fmt"
	"net/http"
)

// JSON-RPC codes written when the transport fails before the MCP server
// produced an answer.
const (
	codeInternalError = -32603
	codeTimeout       = -32001
)

func writeRPCError(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":null,"error":{"code":%d,"message":%q}}`, code, message)
}
