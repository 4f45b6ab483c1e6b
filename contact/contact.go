// Package contact validates and delivers contact form submissions.
//
// Delivery is behind the Submitter interface; the service calls it exactly
// once per valid submission and turns any failure into ErrSubmissionFailed,
// which carries the one message shown to the visitor.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/framework/http/validation"
)

// FailureMessage is shown to the visitor whenever delivery fails.
const FailureMessage = "Your message could not be sent. Please try again."

// ErrSubmissionFailed is returned by Service.Submit when the submitter fails.
var ErrSubmissionFailed = errors.New(FailureMessage)

// Submission is a validated, sanitized contact message.
type Submission struct {
	ID          string             `json:"id"`
	Fields      []validation.Field `json:"fields"`
	SubmittedAt time.Time          `json:"submitted_at"`
	UserAgent   string             `json:"user_agent,omitempty"`
	RemoteIP    string             `json:"remote_ip,omitempty"`
}

// Value returns the value of a named field, or "".
func (s Submission) Value(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Meta describes the client that sent a submission.
type Meta struct {
	UserAgent string
	RemoteIP  string
}

// Submitter delivers a submission somewhere: a database, a queue, a log.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// SubmitFunc adapts a function to the Submitter interface.
type SubmitFunc func(ctx context.Context, sub Submission) error

func (f SubmitFunc) Submit(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// Outcome is the result of a submission attempt. Submission is nil when the
// form did not validate.
type Outcome struct {
	Result     validation.ValidationResult
	Submission *Submission
}

// Sent reports whether the submission was delivered.
func (o Outcome) Sent() bool { return o.Submission != nil }

// ── Service ──────────────────────────────────────────────────────────────────

// Service validates contact forms and hands valid ones to a Submitter.
type Service struct {
	engine    *validation.Engine
	order     []string
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithIDs overrides the submission ID generator.
func WithIDs(gen func() string) Option { return func(s *Service) { s.newID = gen } }

// WithOrder sets the field order used for map input. Ruled fields it leaves
// out are appended.
func WithOrder(order []string) Option { return func(s *Service) { s.order = order } }

// NewService creates a Service. A nil logger discards logs.
func NewService(engine *validation.Engine, submitter Submitter, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		engine:    engine,
		order:     validation.ContactFields,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.order = validation.CompleteOrder(s.order, engine.Names())
	return s
}

// Engine returns the validation engine the service uses.
func (s *Service) Engine() *validation.Engine { return s.engine }

// Order returns the field order used for map input.
func (s *Service) Order() []string { return s.order }

// Validate runs the rule table over the form without submitting.
func (s *Service) Validate(fields []validation.Field) validation.ValidationResult {
	return s.engine.ValidateForm(fields)
}

// Submit validates the form and, when every field passes, delivers it once.
// An invalid form is not an error: the outcome carries the result and no
// submission. A delivery failure returns ErrSubmissionFailed.
func (s *Service) Submit(ctx context.Context, fields []validation.Field, meta Meta) (Outcome, error) {
	res := s.engine.ValidateForm(fields)
	out := Outcome{Result: res}
	if !res.AllValid {
		s.logger.Debug("contact form rejected",
			zap.Strings("invalid", res.Invalid))
		return out, nil
	}

	sub := Submission{
		ID:          s.newID(),
		Fields:      make([]validation.Field, 0, len(res.Fields)),
		SubmittedAt: s.now().UTC(),
		UserAgent:   meta.UserAgent,
		RemoteIP:    meta.RemoteIP,
	}
	for _, st := range res.Fields {
		sub.Fields = append(sub.Fields, validation.Field{Name: st.Name, Value: Sanitize(st.Value)})
	}

	if err := s.submitter.Submit(ctx, sub); err != nil {
		s.logger.Error("contact submission failed",
			zap.String("id", sub.ID),
			zap.Error(err))
		return out, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	s.logger.Info("contact submission sent",
		zap.String("id", sub.ID),
		zap.String("subject", sub.Value("subject")))
	out.Submission = &sub
	return out, nil
}

// ── Sanitizing ───────────────────────────────────────────────────────────────

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// maxDecode bounds how many levels of entity encoding Sanitize unwraps.
const maxDecode = 8

// Sanitize strips all markup from a value and returns plain text. Entity
// encoded markup is decoded and stripped again, so the result never holds a
// tag that was hidden behind entities.
func Sanitize(v string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	for i := 0; i < maxDecode; i++ {
		next := html.UnescapeString(policy.Sanitize(v))
		if next == v {
			return v
		}
		v = next
	}
	// still decoding: keep the escaped form rather than risk live markup
	return policy.Sanitize(v)
}

// ── LogSubmitter ─────────────────────────────────────────────────────────────

// LogSubmitter writes submissions to the log. It is the default driver for
// local development.
type LogSubmitter struct {
	Logger *zap.Logger
}

func (l LogSubmitter) Submit(_ context.Context, sub Submission) error {
	fields := make([]zap.Field, 0, len(sub.Fields)+3)
	fields = append(fields,
		zap.String("id", sub.ID),
		zap.Time("submitted_at", sub.SubmittedAt),
		zap.String("user_agent", sub.UserAgent))
	for _, f := range sub.Fields {
		fields = append(fields, zap.String("field."+f.Name, f.Value))
	}
	l.Logger.Info("contact message", fields...)
	return nil
}
