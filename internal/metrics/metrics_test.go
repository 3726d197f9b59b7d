package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		0:   "none",
		200: "2xx",
		201: "2xx",
		404: "4xx",
		429: "4xx",
		503: "5xx",
	}
	for status, want := range tests {
		if got := StatusClass(status); got != want {
			t.Fatalf("StatusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.CollectAndCount(HTTPLatencySeconds)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/metrics-test", nil))

	if got := testutil.CollectAndCount(HTTPLatencySeconds); got != before+1 {
		t.Fatalf("expected a new series, got %d (was %d)", got, before)
	}
}

func TestStatusRecorderFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	var _ http.Flusher = sr
	sr.Flush()

	if !rec.Flushed {
		t.Fatalf("flush was not forwarded")
	}
}
