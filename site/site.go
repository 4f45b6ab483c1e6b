// Package site renders the portfolio page and its no-script contact form.
package site

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/contact"
	gohttp "github.com/km-arc/go-portfolio/framework/http"
	"github.com/km-arc/go-portfolio/projects"
	"github.com/km-arc/go-portfolio/reveal"
	"github.com/km-arc/go-portfolio/theme"
)

// Page is the data behind views/index.html.
type Page struct {
	App        string
	Theme      theme.State
	Query      projects.Query
	Projects   projects.Page
	Categories []string
	Reveal     template.JS
	Form       Form
	Sent       bool
}

// Views returns a view engine with the page's template functions.
func Views(dir, ext, layout string) *gohttp.ViewEngine {
	return gohttp.NewViewEngine(dir, ext, layout).Funcs(Funcs())
}

// Controller serves the HTML pages.
type Controller struct {
	App      string
	Views    *gohttp.ViewEngine
	Contacts *contact.Service
	Themes   *theme.Handler
	Pager    *projects.Pager
	Reveal   *reveal.Registry
	Logger   *zap.Logger
}

func (c *Controller) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Controller) page(w http.ResponseWriter, r *http.Request, form Form) (Page, error) {
	cfg, err := json.Marshal(c.Reveal)
	if err != nil {
		return Page{}, err
	}
	q := projects.QueryFrom(r)
	return Page{
		App:        c.App,
		Theme:      c.Themes.Current(w, r),
		Query:      q,
		Projects:   c.Pager.View(q),
		Categories: c.Pager.Catalog.Categories(),
		Reveal:     template.JS(cfg),
		Form:       form,
	}, nil
}

func (c *Controller) render(w http.ResponseWriter, r *http.Request, status int, form Form, sent bool) {
	p, err := c.page(w, r, form)
	if err != nil {
		c.logger().Error("page data", zap.Error(err))
		gohttp.NewResponse(w).ServerError()
		return
	}
	p.Sent = sent
	if err := c.Views.View(w, status, "index", p); err != nil {
		c.logger().Error("render index", zap.Error(err))
	}
}

// Index handles GET /.
func (c *Controller) Index(w http.ResponseWriter, r *http.Request) {
	theme.AskColorScheme(w)
	c.render(w, r, http.StatusOK, NewForm(), r.URL.Query().Get("sent") == "1")
}

// Contact handles POST /contact from the page without JavaScript. A valid
// message redirects to the success banner; otherwise the page is rendered
// again with the visitor's input and the field states.
func (c *Controller) Contact(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)

	fields, err := req.Fields(c.Contacts.Order())
	if err != nil {
		gohttp.NewResponse(w).Error(http.StatusBadRequest, "The request body could not be read.")
		return
	}

	out, err := c.Contacts.Submit(r.Context(), fields, contact.Meta{UserAgent: req.UserAgent(), RemoteIP: req.IP()})
	switch {
	case errors.Is(err, contact.ErrSubmissionFailed):
		form := FormFrom(out.Result)
		form.Error = contact.FailureMessage
		c.render(w, r, http.StatusBadGateway, form, false)
	case err != nil:
		gohttp.NewResponse(w).ServerError()
	case !out.Sent():
		c.render(w, r, http.StatusUnprocessableEntity, FormFrom(out.Result), false)
	default:
		gohttp.NewResponse(w).RedirectTo("/?sent=1#contact")
	}
}

// Health handles GET /healthz.
func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(map[string]any{
		"status":   "ok",
		"projects": c.Pager.Catalog.Len(),
	})
}
