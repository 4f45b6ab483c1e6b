package site_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/km-arc/go-portfolio/contact"
	"github.com/km-arc/go-portfolio/framework/http/validation"
	"github.com/km-arc/go-portfolio/framework/routing"
	"github.com/km-arc/go-portfolio/projects"
	"github.com/km-arc/go-portfolio/reveal"
	"github.com/km-arc/go-portfolio/site"
	"github.com/km-arc/go-portfolio/theme"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newRouter(t *testing.T, submit contact.SubmitFunc) *routing.Router {
	t.Helper()
	catalog := projects.NewCatalog([]projects.Project{
		{Slug: "shop", Title: "Storefront", Categories: []string{"web"}, Tech: []string{"Go"}},
		{Slug: "notes", Title: "Field Notes", Categories: []string{"mobile"}, Tech: []string{"Flutter"}},
		{Slug: "lens", Title: "Lens", Categories: []string{"ai"}, Tech: []string{"Python"}},
	})
	c := &site.Controller{
		App:      "Ada Portfolio",
		Views:    site.Views("../views", ".html", "layout"),
		Contacts: contact.NewService(validation.New(validation.ContactRules()), submit, nil),
		Themes:   theme.NewHandler(theme.NewService(theme.NewMemoryStore(), theme.Light, nil), "visitor", 0),
		Pager:    projects.NewPager(catalog, 2, 1),
		Reveal:   reveal.Default(),
	}
	r := routing.New(nil)
	r.Get("/", c.Index)
	r.Post("/contact", c.Contact)
	r.Get("/healthz", c.Health)
	return r
}

func ok(context.Context, contact.Submission) error { return nil }

func get(t *testing.T, r *routing.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func postForm(t *testing.T, r *routing.Router, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func validForm() url.Values {
	return url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"ada@example.com"},
		"subject":   {"Engines"},
		"message":   {"Let us talk about engines."},
	}
}

func mustContain(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(body, w) {
			t.Errorf("body missing %q", w)
		}
	}
}

// ── Index ────────────────────────────────────────────────────────────────────

func TestIndex(t *testing.T) {
	rr := get(t, newRouter(t, ok), "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := rr.Body.String()
	mustContain(t, body,
		`data-theme="light"`,
		"fa-moon",
		"Storefront",
		"Field Notes",
		`id="loadMoreProjects"`,
		`id="reveal-config"`,
		`"selector":".scroll-reveal"`,
	)
	if strings.Contains(body, "Lens") {
		t.Error("third project should wait for load more")
	}
	if strings.Contains(body, "success-message") {
		t.Error("success banner shown without a submission")
	}
}

func TestIndex_AsksForColorScheme(t *testing.T) {
	r := newRouter(t, ok)

	rr := get(t, r, "/")
	if got := rr.Header().Get("Accept-CH"); got != "Sec-CH-Prefers-Color-Scheme" {
		t.Errorf("Accept-CH: got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	mustContain(t, rr.Body.String(), `data-theme="dark"`, "fa-sun")
}

func TestIndex_LoadMoreAndFilter(t *testing.T) {
	r := newRouter(t, ok)

	body := get(t, r, "/?visible=3").Body.String()
	mustContain(t, body, "Lens")
	if strings.Contains(body, `id="loadMoreProjects"`) {
		t.Error("load more should disappear when every project is shown")
	}

	body = get(t, r, "/?filter=ai").Body.String()
	mustContain(t, body, "Lens")
	if strings.Contains(body, "Storefront") {
		t.Error("filter should hide other categories")
	}
}

func TestIndex_SentBanner(t *testing.T) {
	rr := get(t, newRouter(t, ok), "/?sent=1")
	mustContain(t, rr.Body.String(), "success-message show")
}

// ── Contact ──────────────────────────────────────────────────────────────────

func TestContact_Redirects(t *testing.T) {
	var got contact.Submission
	r := newRouter(t, func(_ context.Context, s contact.Submission) error {
		got = s
		return nil
	})

	rr := postForm(t, r, validForm())
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/?sent=1#contact" {
		t.Errorf("location: got %q", loc)
	}
	if got.Value("email") != "ada@example.com" {
		t.Errorf("submitted email: got %q", got.Value("email"))
	}
}

func TestContact_InvalidRerenders(t *testing.T) {
	called := false
	r := newRouter(t, func(context.Context, contact.Submission) error {
		called = true
		return nil
	})

	form := validForm()
	form.Set("email", "nope")
	form.Del("subject")

	rr := postForm(t, r, form)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422", rr.Code)
	}
	if called {
		t.Error("invalid form must not be submitted")
	}
	mustContain(t, rr.Body.String(),
		"Please enter a valid email.",
		"Subject is required.",
		`value="nope"`,
		"form-input invalid",
		"form-input valid",
	)
}

func TestContact_FailureMessage(t *testing.T) {
	r := newRouter(t, func(context.Context, contact.Submission) error {
		return errors.New("mailer offline")
	})

	rr := postForm(t, r, validForm())
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d want 502", rr.Code)
	}
	body := rr.Body.String()
	mustContain(t, body, contact.FailureMessage, `value="Ada"`)
	if strings.Contains(body, "mailer offline") {
		t.Error("internal cause must not be rendered")
	}
}

// ── Health ───────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	rr := get(t, newRouter(t, ok), "/healthz")
	var body struct {
		Data struct {
			Status   string `json:"status"`
			Projects int    `json:"projects"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Status != "ok" || body.Data.Projects != 3 {
		t.Errorf("health: %+v", body.Data)
	}
}
