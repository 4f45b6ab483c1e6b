// Package reveal describes which page elements animate when they scroll
// into view. The page carries one client-side observer that reads the
// registry as JSON; every section registers a Target instead of running its
// own observer.
package reveal

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Target is one reveal-on-visible rule.
type Target struct {
	Name       string  `json:"name"`
	Selector   string  `json:"selector"`
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"rootMargin,omitempty"`
	Class      string  `json:"class"`
	Once       bool    `json:"once"`

	// Children, when set, receives ChildClass one element at a time,
	// Stagger milliseconds apart, once the target is visible.
	Children   string `json:"children,omitempty"`
	ChildClass string `json:"childClass,omitempty"`
	Stagger    int    `json:"stagger,omitempty"`

	// Count animates [data-count] numbers inside the target.
	Count bool `json:"count,omitempty"`
}

var (
	ErrInvalidTarget = errors.New("reveal: invalid target")
	ErrDuplicate     = errors.New("reveal: duplicate target")

	marginPart = regexp.MustCompile(`^-?\d+(\.\d+)?(px|%)$`)
)

// Validate checks a target.
func (t Target) Validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidTarget)
	case strings.TrimSpace(t.Selector) == "":
		return fmt.Errorf("%w: %s: selector is required", ErrInvalidTarget, t.Name)
	case t.Threshold < 0 || t.Threshold > 1:
		return fmt.Errorf("%w: %s: threshold %v outside 0..1", ErrInvalidTarget, t.Name, t.Threshold)
	case t.Class == "" && t.Children == "" && !t.Count:
		return fmt.Errorf("%w: %s: nothing to reveal", ErrInvalidTarget, t.Name)
	case t.Children != "" && t.ChildClass == "":
		return fmt.Errorf("%w: %s: children need a child class", ErrInvalidTarget, t.Name)
	case t.Stagger < 0:
		return fmt.Errorf("%w: %s: negative stagger", ErrInvalidTarget, t.Name)
	}
	if t.RootMargin != "" {
		parts := strings.Fields(t.RootMargin)
		if len(parts) > 4 {
			return fmt.Errorf("%w: %s: root margin %q has more than four values", ErrInvalidTarget, t.Name, t.RootMargin)
		}
		for _, p := range parts {
			if p != "0" && !marginPart.MatchString(p) {
				return fmt.Errorf("%w: %s: root margin value %q", ErrInvalidTarget, t.Name, p)
			}
		}
	}
	return nil
}

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry holds targets in registration order.
type Registry struct {
	mu      sync.RWMutex
	targets []Target
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register validates and adds targets. Nothing is added if any is invalid
// or a name is taken.
func (r *Registry) Register(targets ...Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(r.targets)+len(targets))
	for _, t := range r.targets {
		seen[t.Name] = true
	}
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicate, t.Name)
		}
		seen[t.Name] = true
	}
	r.targets = append(r.targets, targets...)
	return nil
}

// Targets returns a copy of the registered targets.
func (r *Registry) Targets() []Target {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Target(nil), r.targets...)
}

// MarshalJSON encodes the registry as the observer config:
// {"targets": [...]}.
func (r *Registry) MarshalJSON() ([]byte, error) {
	targets := r.Targets()
	if targets == nil {
		targets = []Target{}
	}
	return json.Marshal(struct {
		Targets []Target `json:"targets"`
	}{targets})
}

// ── Defaults ─────────────────────────────────────────────────────────────────

const bottomInset = "0px 0px -50px 0px"

// Defaults are the site's sections.
func Defaults() []Target {
	return []Target{
		{Name: "scroll-reveal", Selector: ".scroll-reveal", Threshold: 0.1, RootMargin: bottomInset, Class: "revealed", Once: true},
		{Name: "about", Selector: ".about-section", Threshold: 0.5, RootMargin: "0px 0px -100px 0px", Class: "animate", Once: true,
			Children: ".skill-tag", ChildClass: "animate-in", Stagger: 100, Count: true},
		{Name: "projects", Selector: ".projects-section", Threshold: 0.1, RootMargin: bottomInset, Once: true,
			Children: ".project-card", ChildClass: "animate-in", Stagger: 150},
		{Name: "timeline", Selector: ".experience-section", Threshold: 0.2, RootMargin: bottomInset, Once: true,
			Children: ".timeline-item", ChildClass: "animate-in", Stagger: 200},
		{Name: "contact", Selector: ".contact-section", Threshold: 0.2, RootMargin: bottomInset, Class: "animate", Once: true,
			Children: ".form-group", ChildClass: "animate-in", Stagger: 100},
		{Name: "footer", Selector: ".footer", Threshold: 0.1, RootMargin: bottomInset, Class: "animate", Once: true, Count: true},
	}
}

// Default returns a registry holding Defaults.
func Default() *Registry {
	r := NewRegistry()
	if err := r.Register(Defaults()...); err != nil {
		panic(err)
	}
	return r
}
