package container

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotBound is returned by Make for an abstract nobody registered.
var ErrNotBound = errors.New("container: no binding")

// Factory builds a value from the container.
type Factory func(c *Container) (any, error)

// binding holds a factory and, for singletons, the value once built.
type binding struct {
	factory   Factory
	singleton bool

	mu       sync.Mutex
	built    bool
	instance any
}

// Container is a small IoC container in the style of Laravel's
// Illuminate\Container\Container: string abstracts, explicit factories,
// singletons built on first use.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	aliases  map[string]string
}

// New creates an empty container bound to itself as "container".
func New() *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ─────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make builds a new value.
//
//	c.Bind("contact.form", func(c *container.Container) (any, error) {
//	    return site.NewForm(), nil
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory})
}

// Singleton registers a factory whose first successful result is reused.
// A failed build is not cached; the next Make tries again.
//
//	c.Singleton("redis", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return database.Redis(ctx, cfg.Redis, logger)
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory, singleton: true})
}

// Instance registers an already built value.
func (c *Container) Instance(abstract string, instance any) {
	c.set(abstract, &binding{singleton: true, built: true, instance: instance})
}

func (c *Container) set(abstract string, b *binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[c.canonical(abstract)] = b
}

// Alias registers another name for abstract.
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Make resolves abstract. Factories may call Make for their dependencies
// but must not depend on themselves.
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	b, ok := c.bindings[c.canonical(abstract)]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	}

	if !b.singleton {
		return c.build(abstract, b.factory)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		return b.instance, nil
	}
	v, err := c.build(abstract, b.factory)
	if err != nil {
		return nil, err
	}
	b.instance, b.built = v, true
	return v, nil
}

func (c *Container) build(abstract string, f Factory) (any, error) {
	v, err := f(c)
	if err != nil {
		return nil, fmt.Errorf("container: building [%s]: %w", abstract, err)
	}
	return v, nil
}

// Bound reports whether abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(abstract)]
	return ok
}

// Resolved reports whether a singleton has been built.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	b, ok := c.bindings[c.canonical(abstract)]
	c.mu.RUnlock()
	if !ok || !b.singleton {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built
}

// Bindings returns every registered abstract, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias. Callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics ─────────────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	cfg, err := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	v, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] is %T, not %T", abstract, v, zero)
	}
	return typed, nil
}

// MustResolve is Resolve for bindings that cannot fail once booted. It
// panics on error.
func MustResolve[T any](c *Container, abstract string) T {
	v, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return v
}
