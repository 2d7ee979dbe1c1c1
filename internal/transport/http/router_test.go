package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"hazcom/pkg/requestcontext"
	"hazcom/pkg/testutil"
)

// echoHandler exposes one route that reports request-scoped values.
type echoHandler struct{}

func (echoHandler) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-ID", requestcontext.RequestID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

// panicHandler exposes one route that panics.
type panicHandler struct{}

func (panicHandler) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("unexpected")
	})
}

func newTestRouter(t *testing.T, handlers ...Registrar) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, nil, handlers...)
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "a router with the standard middleware chain", func(t *testing.T) {
		router := newTestRouter(t, echoHandler{}, panicHandler{})

		testutil.When(t, "the health endpoint is hit", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusOK)
		})

		testutil.When(t, "the metrics endpoint is hit", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
			testutil.AssertStatus(t, rr, http.StatusOK)
		})

		testutil.Then(t, "a request ID is generated and echoed back", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/echo"))
			testutil.AssertStatus(t, rr, http.StatusOK)
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatal("expected X-Request-ID response header")
			}
			if rr.Header().Get("X-Echo-Request-ID") == "" {
				t.Fatal("expected request ID in the request context")
			}
		})

		testutil.Then(t, "a caller-supplied request ID is honored", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/echo")
			req.Header.Set("X-Request-ID", "caller-id-1")
			rr := testutil.DoRequest(router, req)
			if got := rr.Header().Get("X-Echo-Request-ID"); got != "caller-id-1" {
				t.Fatalf("expected caller-id-1, got %q", got)
			}
		})

		testutil.Then(t, "a panicking handler is converted to a 500", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/boom"))
			testutil.AssertStatus(t, rr, http.StatusInternalServerError)
		})
	})
}
