package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/km-arc/go-portfolio/framework/http/validation"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env", "does-not-exist.env"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Valid(t *testing.T) {
	out, err := run(t, "check",
		"--field", "firstName=Ada",
		"--field", "email=ada@example.com",
		"--field", "phone=",
	)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"FIELD", "firstName", "email", "phone", "valid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "invalid") {
		t.Errorf("no field should be invalid:\n%s", out)
	}
}

func TestCheck_UnruledField(t *testing.T) {
	out, err := run(t, "check", "--field", "nickname=Ada", "--field", "email=ada@example.com")
	if err != nil {
		t.Fatalf("unknown fields are always valid: %v\n%s", err, out)
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "nickname":
			if fields[1] != "unruled" {
				t.Errorf("nickname state: got %q", fields[1])
			}
		case "email":
			if fields[1] != "valid" {
				t.Errorf("email state: got %q", fields[1])
			}
		}
	}
	if !strings.Contains(out, "unruled") {
		t.Errorf("output missing unruled state:\n%s", out)
	}
}

func TestCheck_Invalid(t *testing.T) {
	out, err := run(t, "check", "--field", "email=nope", "-f", "firstName=A")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	for _, want := range []string{"Please enter a valid email.", "First name must be at least 2 characters."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheck_JSON(t *testing.T) {
	out, err := run(t, "check", "--json", "--field", "message=short")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var res validation.ValidationResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.AllValid || res.FirstInvalid() != "message" {
		t.Errorf("result: %+v", res)
	}
}

func TestCheck_BadFieldFlag(t *testing.T) {
	_, err := run(t, "check", "--field", "no-equals-sign")
	if err == nil || errors.Is(err, errInvalid) {
		t.Errorf("expected a usage error, got %v", err)
	}
}

func TestProjects(t *testing.T) {
	out, err := run(t, "projects", "--filter", "ai")
	if err != nil {
		t.Fatalf("projects: %v\n%s", err, out)
	}
	for _, want := range []string{"lens", "chat-support", "forecast", "3 of 3 shown"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "storefront") {
		t.Errorf("filter leaked a web project:\n%s", out)
	}
}

func TestProjects_LoadMoreHint(t *testing.T) {
	out, err := run(t, "projects", "--visible", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2 of 8 shown; --visible 5 for more") {
		t.Errorf("missing load-more hint:\n%s", out)
	}
}
