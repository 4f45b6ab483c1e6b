package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gohttp "github.com/km-arc/go-portfolio/framework/http"
)

func TestViewEngine_View(t *testing.T) {
	ve := gohttp.NewViewEngine("testdata", ".html", "layout")
	rr := httptest.NewRecorder()

	if err := ve.View(rr, http.StatusOK, "hello", map[string]string{"Name": "<Ada>", "Tag": "GO"}); err != nil {
		t.Fatal(err)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "<p>Hello &lt;Ada&gt; (go)</p>") {
		t.Errorf("body: %s", body)
	}
	if !strings.HasPrefix(body, "<html>") {
		t.Errorf("layout not applied: %s", body)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestViewEngine_Status(t *testing.T) {
	ve := gohttp.NewViewEngine("testdata", ".html", "layout")
	rr := httptest.NewRecorder()

	_ = ve.View(rr, http.StatusUnprocessableEntity, "hello", map[string]string{"Name": "x", "Tag": "y"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
}

func TestViewEngine_Errors(t *testing.T) {
	ve := gohttp.NewViewEngine("testdata", ".html", "layout")

	rr := httptest.NewRecorder()
	if err := ve.View(rr, http.StatusOK, "nope", nil); err == nil || rr.Code != http.StatusInternalServerError {
		t.Errorf("missing template: err=%v code=%d", err, rr.Code)
	}

	rr = httptest.NewRecorder()
	if err := ve.View(rr, http.StatusOK, "broken", map[string]string{}); err == nil || rr.Code != http.StatusInternalServerError {
		t.Errorf("render error: err=%v code=%d", err, rr.Code)
	}
}
