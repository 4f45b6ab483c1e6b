package projects

import (
	"net/http"
	"strconv"

	gohttp "github.com/km-arc/go-portfolio/framework/http"
	"github.com/km-arc/go-portfolio/framework/routing"
)

// Handler serves the grid as JSON for the client-side filter buttons and
// load-more button.
type Handler struct {
	pager *Pager
}

// NewHandler returns a Handler over pager.
func NewHandler(pager *Pager) *Handler {
	return &Handler{pager: pager}
}

// QueryFrom reads filter, q and visible from the query string.
func QueryFrom(r *http.Request) Query {
	req := gohttp.NewRequest(r)
	q := Query{
		Filter: req.Query("filter", "all"),
		Search: req.Query("q"),
	}
	if v, err := strconv.Atoi(req.Query("visible")); err == nil && v > 0 {
		q.Visible = v
	}
	return q
}

// Index handles GET /api/projects?filter=&q=&visible=.
//
//	200 {"data": {"projects": [...], "total": 9, "has_more": true, "next": 9}}
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(h.pager.View(QueryFrom(r)))
}

// Show handles GET /api/projects/{slug}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	p, err := h.pager.Catalog.Get(routing.Param(r, "slug"))
	if err != nil {
		res.NotFound("Project not found.")
		return
	}
	res.Success(p)
}
