package routing_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/km-arc/go-portfolio/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/projects", okHandler)
	r.Post("/api/contact", okHandler)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/projects", http.StatusOK},
		{http.MethodPost, "/api/contact", http.StatusOK},
		{http.MethodPost, "/projects", http.StatusMethodNotAllowed},
		{http.MethodGet, "/not-registered", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rr := do(t, r, tt.method, tt.path); rr.Code != tt.want {
				t.Errorf("got %d want %d", rr.Code, tt.want)
			}
		})
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/projects/{slug}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "slug")))
	})

	rr := do(t, r, http.MethodGet, "/projects/portfolio-site")
	if rr.Body.String() != "portfolio-site" {
		t.Errorf("got body %q want %q", rr.Body.String(), "portfolio-site")
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/api", func(api *routing.Router) {
		api.Get("/theme", okHandler)
	})

	if rr := do(t, r, http.MethodGet, "/api/theme"); rr.Code != http.StatusOK {
		t.Errorf("GET /api/theme: got %d want 200", rr.Code)
	}
	if rr := do(t, r, http.MethodGet, "/theme"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /theme: expected 404, got %d", rr.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/grouped", okHandler)
	})
	r.Get("/plain", okHandler)

	do(t, r, http.MethodGet, "/plain")
	if called {
		t.Error("group middleware must not run outside the group")
	}
	do(t, r, http.MethodGet, "/grouped")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Recoverer ────────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	if rr := do(t, r, http.MethodGet, "/panic"); rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}

// ── Static ───────────────────────────────────────────────────────────────────

func TestRouter_Static(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := routing.New(nil)
	r.Static("/assets", dir)

	rr := do(t, r, http.MethodGet, "/assets/site.css")
	if rr.Code != http.StatusOK || rr.Body.String() != "body{}" {
		t.Errorf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestRouter_HandlerInterface(t *testing.T) {
	var _ http.Handler = routing.New(nil).Handler()
}
