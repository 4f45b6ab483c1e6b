package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/km-arc/go-portfolio/framework/http/validation"
)

const maxBody = 1 << 20 // 1 MB, contact messages are small

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes a JSON body into v.
func (req *Request) Bind(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(io.LimitReader(req.raw.Body, maxBody))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// Values returns the submitted fields as a flat map. JSON bodies must be an
// object of strings; form bodies use the first value of each key.
func (req *Request) Values() (map[string]string, error) {
	if strings.Contains(req.ContentType(), "application/json") {
		var raw map[string]any
		if err := req.Bind(&raw); err != nil {
			return nil, err
		}
		out := make(map[string]string, len(raw))
		for k, v := range raw {
			switch t := v.(type) {
			case string:
				out[k] = t
			case nil:
				out[k] = ""
			case float64:
				out[k] = strconv.FormatFloat(t, 'f', -1, 64)
			case bool:
				out[k] = strconv.FormatBool(t)
			default:
				return nil, fmt.Errorf("field %q must be a string", k)
			}
		}
		return out, nil
	}

	req.raw.Body = http.MaxBytesReader(nil, req.raw.Body, maxBody)
	if err := req.raw.ParseForm(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(req.raw.PostForm))
	for k, v := range req.raw.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

// Fields returns the form as an ordered field list: every name in order
// (empty when not submitted), then any other submitted key sorted by name.
func (req *Request) Fields(order []string) ([]validation.Field, error) {
	values, err := req.Values()
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		if _, ok := values[name]; !ok {
			values[name] = ""
		}
	}
	return validation.Ordered(values, order), nil
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.raw.ParseForm()
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Cookie returns a cookie value or "".
func (req *Request) Cookie(name string) string {
	c, err := req.raw.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// UserAgent returns the User-Agent header.
func (req *Request) UserAgent() string { return req.raw.UserAgent() }

// IP returns the client IP (respects RealIP middleware).
func (req *Request) IP() string {
	return req.raw.RemoteAddr
}

// PrefersDark reports the client hint for a dark color scheme.
func (req *Request) PrefersDark() bool {
	return strings.EqualFold(req.raw.Header.Get("Sec-CH-Prefers-Color-Scheme"), "dark")
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}
