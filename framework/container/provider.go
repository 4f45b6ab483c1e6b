package container

import (
	"fmt"
	"sync"
)

// ── ServiceProvider ──────────────────────────────────────────────────────────

// ServiceProvider groups the bindings of one part of the site, like
// Laravel's Illuminate\Support\ServiceProvider.
//
// Register only binds factories. Boot runs after every provider has
// registered, so it may resolve anything; an error from Boot stops startup.
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container) error

	// Provides lists the abstracts a deferred provider binds.
	Provides() []string

	// IsDeferred providers register on the first Make of one of their
	// Provides abstracts instead of at startup.
	IsDeferred() bool
}

// BaseProvider gives a provider no-op Boot, Provides and IsDeferred.
//
//	type ThemeProvider struct{ container.BaseProvider }
//	func (p *ThemeProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ─────────────────────────────────────────────────────────

// ProviderRegistry registers and boots providers in order.
type ProviderRegistry struct {
	app        *Container
	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately, and boot
// immediately too when the registry has already booted. Registering the
// same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true
	booted := r.booted
	if !provider.IsDeferred() {
		r.eager = append(r.eager, provider)
	}
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.lazy(provider)
		return nil
	}

	provider.Register(r.app)
	if booted {
		return boot(r.app, provider)
	}
	return nil
}

// lazy binds each provided abstract to a stub that registers (and, after
// startup, boots) the provider on first use, then resolves the real binding.
func (r *ProviderRegistry) lazy(provider ServiceProvider) {
	var (
		once    sync.Once
		loadErr error
	)
	load := func(c *Container) error {
		once.Do(func() {
			provider.Register(c)
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				loadErr = boot(c, provider)
			}
		})
		return loadErr
	}
	for _, abstract := range provider.Provides() {
		abs := abstract
		r.app.Bind(abs, func(c *Container) (any, error) {
			if err := load(c); err != nil {
				return nil, err
			}
			return c.Make(abs)
		})
	}
}

// Boot boots every eager provider in registration order and stops at the
// first error. Calling it again is a no-op.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, p := range providers {
		if err := boot(r.app, p); err != nil {
			return err
		}
	}
	return nil
}

func boot(app *Container, p ServiceProvider) error {
	if err := p.Boot(app); err != nil {
		return fmt.Errorf("boot %T: %w", p, err)
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
