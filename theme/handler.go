package theme

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	gohttp "github.com/km-arc/go-portfolio/framework/http"
)

// Handler serves the theme endpoints. Visitors are identified by a random
// cookie; nothing else about them is stored.
type Handler struct {
	svc    *Service
	cookie string
	maxAge time.Duration
}

// NewHandler creates a Handler using the named visitor cookie.
func NewHandler(svc *Service, cookie string, maxAge time.Duration) *Handler {
	if cookie == "" {
		cookie = "visitor"
	}
	return &Handler{svc: svc, cookie: cookie, maxAge: maxAge}
}

// Service returns the underlying service.
func (h *Handler) Service() *Service { return h.svc }

// Visitor returns the visitor id from the cookie, issuing a new one when
// the request carries none.
func (h *Handler) Visitor(w http.ResponseWriter, r *http.Request) string {
	if id := gohttp.NewRequest(r).Cookie(h.cookie); id != "" {
		return id
	}
	id := uuid.NewString()
	c := &http.Cookie{
		Name:     h.cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.maxAge > 0 {
		c.MaxAge = int(h.maxAge.Seconds())
	}
	gohttp.NewResponse(w).SetCookie(c)
	return id
}

// State is the JSON view of a visitor's theme.
type State struct {
	Theme Theme  `json:"theme"`
	Icon  string `json:"icon"`
	Saved bool   `json:"saved"`
}

// Current resolves the theme for a request.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) State {
	req := gohttp.NewRequest(r)
	visitor := h.Visitor(w, r)
	_, saved := h.svc.Saved(r.Context(), visitor)
	t := h.svc.Resolve(r.Context(), visitor, req.PrefersDark())
	return State{Theme: t, Icon: Icon(t), Saved: saved}
}

// AskColorScheme asks the browser to send its color scheme hint on the
// following requests.
func AskColorScheme(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")
}

// Show handles GET /api/theme.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	AskColorScheme(w)
	gohttp.NewResponse(w).Success(h.Current(w, r))
}

// Toggle handles POST /api/theme/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	visitor := h.Visitor(w, r)
	t, err := h.svc.Toggle(r.Context(), visitor, req.PrefersDark())
	if err != nil {
		h.svc.logger.Warn("theme toggle not saved", zap.String("visitor", visitor), zap.Error(err))
		res.ServerError("Your theme preference could not be saved.")
		return
	}
	res.Success(State{Theme: t, Icon: Icon(t), Saved: true})
}

// ToggleForm handles POST /theme/toggle from the no-script button and sends
// the visitor back where they came from.
func (h *Handler) ToggleForm(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	visitor := h.Visitor(w, r)
	// a failed save still redirects; the page renders the resolved theme
	if _, err := h.svc.Toggle(r.Context(), visitor, req.PrefersDark()); err != nil {
		h.svc.logger.Warn("theme toggle not saved", zap.String("visitor", visitor), zap.Error(err))
	}
	gohttp.NewResponse(w).RedirectBack(r, "/")
}
