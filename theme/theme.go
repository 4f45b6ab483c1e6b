// Package theme keeps each visitor's light/dark preference behind an
// injected Store.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Theme is a color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ErrUnknownTheme is returned for anything other than light or dark.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Parse accepts "light" or "dark", case-insensitively.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the toggle icon class: a sun offers the way out of dark mode, a
// moon the way into it.
func Icon(t Theme) string {
	if t == Dark {
		return "fa-sun"
	}
	return "fa-moon"
}

// Store persists preferences by key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// ── Service ──────────────────────────────────────────────────────────────────

// Service resolves and toggles visitor preferences.
type Service struct {
	store    Store
	fallback Theme
	logger   *zap.Logger
}

// NewService creates a Service. fallback applies when the visitor has no
// saved preference and the client sends no color-scheme hint.
func NewService(store Store, fallback Theme, logger *zap.Logger) *Service {
	if fallback != Dark {
		fallback = Light
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, fallback: fallback, logger: logger}
}

// Resolve returns the saved preference, else the system preference when the
// client reports a dark scheme, else the fallback. A store error is logged
// and treated as no saved preference.
func (s *Service) Resolve(ctx context.Context, visitor string, systemDark bool) Theme {
	if saved, ok := s.saved(ctx, visitor); ok {
		return saved
	}
	if systemDark {
		return Dark
	}
	return s.fallback
}

// Saved reports whether the visitor has stored a preference.
func (s *Service) Saved(ctx context.Context, visitor string) (Theme, bool) {
	return s.saved(ctx, visitor)
}

func (s *Service) saved(ctx context.Context, visitor string) (Theme, bool) {
	if visitor == "" {
		return "", false
	}
	v, ok, err := s.store.Get(ctx, key(visitor))
	if err != nil {
		s.logger.Warn("theme lookup failed", zap.String("visitor", visitor), zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	t, err := Parse(v)
	if err != nil {
		s.logger.Warn("ignoring stored theme", zap.String("visitor", visitor), zap.Error(err))
		return "", false
	}
	return t, true
}

// Set stores an explicit preference.
func (s *Service) Set(ctx context.Context, visitor string, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if visitor == "" {
		return errors.New("theme: empty visitor")
	}
	if err := s.store.Set(ctx, key(visitor), string(t)); err != nil {
		return fmt.Errorf("theme: save: %w", err)
	}
	return nil
}

// Toggle flips the visitor's current theme and saves the result.
func (s *Service) Toggle(ctx context.Context, visitor string, systemDark bool) (Theme, error) {
	next := s.Resolve(ctx, visitor, systemDark).Opposite()
	if err := s.Set(ctx, visitor, next); err != nil {
		return s.Resolve(ctx, visitor, systemDark), err
	}
	s.logger.Debug("theme toggled", zap.String("visitor", visitor), zap.String("theme", string(next)))
	return next, nil
}

func key(visitor string) string { return "theme:" + visitor }

// ── MemoryStore ──────────────────────────────────────────────────────────────

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = value
	return nil
}
