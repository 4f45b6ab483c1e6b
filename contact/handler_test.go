package contact_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/km-arc/go-portfolio/contact"
	"github.com/km-arc/go-portfolio/framework/http/validation"
)

func post(t *testing.T, h http.HandlerFunc, contentType, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "handler-test")
	rr := httptest.NewRecorder()
	h(rr, req)

	var m map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return rr, m
}

const validJSON = `{
	"firstName": "Ada",
	"lastName": "Lovelace",
	"email": "ada@example.com",
	"subject": "Engines",
	"message": "Let us talk about engines."
}`

func TestHandler_Store_Created(t *testing.T) {
	rec := &recorder{}
	h := contact.NewHandler(newService(rec))

	rr, m := post(t, h.Store, "application/json", validJSON)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201 (%v)", rr.Code, m)
	}
	if data := m["data"].(map[string]any); data["id"] != "sub-1" {
		t.Errorf("id: got %v", data["id"])
	}
	if rec.calls[0].UserAgent != "handler-test" {
		t.Errorf("user agent: got %q", rec.calls[0].UserAgent)
	}
}

func TestHandler_Store_Form(t *testing.T) {
	rec := &recorder{}
	h := contact.NewHandler(newService(rec))

	form := url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"ada@example.com"},
		"subject":   {"Engines"},
		"message":   {"Let us talk about engines."},
	}
	rr, _ := post(t, h.Store, "application/x-www-form-urlencoded", form.Encode())

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201", rr.Code)
	}
}

func TestHandler_Store_Unprocessable(t *testing.T) {
	rec := &recorder{}
	h := contact.NewHandler(newService(rec))

	rr, m := post(t, h.Store, "application/json", `{"firstName":"A","email":"nope","message":"hi"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422", rr.Code)
	}
	if m["first_invalid"] != "firstName" {
		t.Errorf("first_invalid: got %v", m["first_invalid"])
	}
	errs := m["errors"].(map[string]any)
	for _, f := range []string{"firstName", "email", "message"} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected error for %s, got %v", f, errs)
		}
	}
	if len(rec.calls) != 0 {
		t.Error("invalid form must not be submitted")
	}
}

func TestHandler_Store_Failure(t *testing.T) {
	h := contact.NewHandler(newService(&recorder{err: errors.New("queue down")}))

	rr, m := post(t, h.Store, "application/json", validJSON)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d want 502", rr.Code)
	}
	if m["message"] != contact.FailureMessage {
		t.Errorf("message: got %v", m["message"])
	}
	if strings.Contains(rr.Body.String(), "queue down") {
		t.Error("internal cause must not leak to the client")
	}
}

func TestHandler_Store_BadBody(t *testing.T) {
	h := contact.NewHandler(newService(&recorder{}))

	rr, _ := post(t, h.Store, "application/json", `{"email": [1]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d want 400", rr.Code)
	}
}

func TestHandler_Check(t *testing.T) {
	rec := &recorder{}
	h := contact.NewHandler(newService(rec))

	rr, m := post(t, h.Check, "application/json", `{"email":"nope","phone":""}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rr.Code)
	}
	data := m["data"].(map[string]any)
	if data["all_valid"] != false {
		t.Errorf("all_valid: got %v", data["all_valid"])
	}
	invalid := data["invalid"].([]any)
	if len(invalid) != 1 || invalid[0] != "email" {
		t.Errorf("invalid: got %v", invalid)
	}
	if len(rec.calls) != 0 {
		t.Error("Check must never submit")
	}
}

func TestHandler_Store_RuleFileMissingRequired(t *testing.T) {
	set, err := validation.ParseRuleFile([]byte(`
fields:
  email:
    label: Email
    rules: required|email
  message:
    label: Message
    rules: required|min:10
`))
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	svc := contact.NewService(validation.New(set.Table), rec, nil, contact.WithOrder(set.Order))
	h := contact.NewHandler(svc)

	rr, m := post(t, h.Store, "application/json", `{"message":"hello there friend"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d want 422 (%v)", rr.Code, m)
	}
	if m["first_invalid"] != "email" {
		t.Errorf("first_invalid: got %v", m["first_invalid"])
	}
	if len(rec.calls) != 0 {
		t.Error("a submission without its required email must not be sent")
	}
}

func TestNewService_OrderCoversRuledFields(t *testing.T) {
	rules := validation.MustCompile(validation.Rules{"email": "required|email", "topic": "required"}, nil)
	svc := contact.NewService(validation.New(rules), &recorder{}, nil, contact.WithOrder(nil))

	if got := svc.Order(); len(got) != 2 || got[0] != "email" || got[1] != "topic" {
		t.Errorf("order: got %v", got)
	}
}
