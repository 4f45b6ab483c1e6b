package contact

import (
	"errors"
	"net/http"

	gohttp "github.com/km-arc/go-portfolio/framework/http"
	"github.com/km-arc/go-portfolio/framework/http/validation"
)

// Handler exposes the service over JSON.
type Handler struct {
	svc *Service
}

// NewHandler creates the JSON handler for svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Store handles POST /api/contact.
//
//	201 {"data": {"id": "..."}}
//	422 {"errors": {...}, "first_invalid": "email"}
//	502 {"message": "Your message could not be sent. Please try again."}
func (h *Handler) Store(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	fields, err := req.Fields(h.svc.Order())
	if err != nil {
		res.Error(http.StatusBadRequest, "The request body could not be read.")
		return
	}

	out, err := h.svc.Submit(r.Context(), fields, Meta{UserAgent: req.UserAgent(), RemoteIP: req.IP()})
	switch {
	case errors.Is(err, ErrSubmissionFailed):
		res.Error(http.StatusBadGateway, FailureMessage)
	case err != nil:
		res.ServerError()
	case !out.Sent():
		res.ValidationFailed(out.Result)
	default:
		res.Created(map[string]any{"id": out.Submission.ID})
	}
}

// Check handles POST /api/contact/validate: inline feedback for blur/input
// events, without submitting.
//
//	200 {"data": {"all_valid": false, "fields": [...], "invalid": ["email"]}}
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	values, err := req.Values()
	if err != nil {
		res.Error(http.StatusBadRequest, "The request body could not be read.")
		return
	}
	// only the submitted fields: a blur on one control checks that control
	res.Success(h.svc.Validate(validation.Ordered(values, h.svc.Order())))
}
