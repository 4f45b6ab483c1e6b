// Package providers wires the site's parts into the container.
package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/framework/config"
	"github.com/km-arc/go-portfolio/framework/container"
	"github.com/km-arc/go-portfolio/framework/database"
	"github.com/km-arc/go-portfolio/framework/http/validation"
	"github.com/km-arc/go-portfolio/framework/logging"
	"github.com/km-arc/go-portfolio/framework/routing"
	"github.com/km-arc/go-portfolio/site"
)

// ── Shutdown ─────────────────────────────────────────────────────────────────

// Shutdown collects the cleanup of resources opened by factories. Close runs
// them in reverse order.
type Shutdown struct {
	mu  sync.Mutex
	fns []func() error
}

// Add registers fn to run on Close.
func (s *Shutdown) Add(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

// Close runs every registered function, newest first, and joins their errors.
func (s *Shutdown) Close() error {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func shutdown(c *container.Container) *Shutdown {
	return container.MustResolve[*Shutdown](c, "shutdown")
}

func conf(c *container.Container) *config.Config {
	return container.MustResolve[*config.Config](c, "config")
}

func logger(c *container.Container) *zap.Logger {
	return container.MustResolve[*zap.Logger](c, "logger")
}

func router(c *container.Container) *routing.Router {
	return container.MustResolve[*routing.Router](c, "router")
}

// ── ConfigServiceProvider ────────────────────────────────────────────────────

// ConfigServiceProvider binds the configuration and the shutdown hooks.
//
// Bound abstracts:
//   - "config"   → *config.Config (alias "configuration")
//   - "shutdown" → *Shutdown
//
// Config, when set, is used as is; otherwise EnvFiles are loaded.
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Load(p.EnvFiles...)
	}
	app.Instance("config", cfg)
	app.Alias("config", "configuration")
	app.Instance("shutdown", &Shutdown{})
}

// ── LoggingServiceProvider ───────────────────────────────────────────────────

// LoggingServiceProvider binds the zap logger.
//
// Bound abstracts:
//   - "logger" → *zap.Logger
//
// Logger, when set, is used instead of building one from LOG_LEVEL.
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Singleton("logger", func(c *container.Container) (any, error) {
		if p.Logger != nil {
			return p.Logger, nil
		}
		l, err := logging.New(conf(c).Log)
		if err != nil {
			return nil, err
		}
		shutdown(c).Add(func() error {
			// stderr sync fails on some terminals; nothing to report
			_ = l.Sync()
			return nil
		})
		return l, nil
	})
}

// ── RoutingServiceProvider ───────────────────────────────────────────────────

// RoutingServiceProvider binds the router.
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) (any, error) {
		return routing.New(logger(c)), nil
	})
}

// ── ViewServiceProvider ──────────────────────────────────────────────────────

// ViewServiceProvider binds the template engine, configured from VIEW_*.
//
// Bound abstracts:
//   - "view" → *gohttp.ViewEngine
type ViewServiceProvider struct {
	container.BaseProvider
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	app.Singleton("view", func(c *container.Container) (any, error) {
		v := conf(c).Views
		return site.Views(v.Dir, v.Ext, v.Layout), nil
	})
}

// ── ValidationServiceProvider ────────────────────────────────────────────────

// ValidationServiceProvider binds the contact rule table: the YAML file
// named by CONTACT_RULES_FILE, or the built-in contact rules.
//
// Bound abstracts:
//   - "validation"       → *validation.Engine
//   - "validation.order" → []string
type ValidationServiceProvider struct {
	container.BaseProvider
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	app.Singleton("validation.rules", func(c *container.Container) (any, error) {
		path := conf(c).Contact.RulesFile
		if path == "" {
			return validation.RuleSet{Table: validation.ContactRules(), Order: validation.ContactFields}, nil
		}
		rs, err := validation.LoadRuleFile(path)
		if err != nil {
			return nil, err
		}
		logger(c).Info("contact rules loaded", zap.String("path", path), zap.Strings("fields", rs.Order))
		return rs, nil
	})
	app.Singleton("validation", func(c *container.Container) (any, error) {
		rs, err := container.Resolve[validation.RuleSet](c, "validation.rules")
		if err != nil {
			return nil, err
		}
		return validation.New(rs.Table), nil
	})
	app.Bind("validation.order", func(c *container.Container) (any, error) {
		rs, err := container.Resolve[validation.RuleSet](c, "validation.rules")
		if err != nil {
			return nil, err
		}
		return rs.Order, nil
	})
}

// ── RedisServiceProvider ─────────────────────────────────────────────────────

// RedisServiceProvider binds a Redis client on first use, so a site with
// no Redis-backed driver never dials.
//
// Bound abstracts:
//   - "redis" → *redis.Client
type RedisServiceProvider struct {
	container.BaseProvider
}

func (p *RedisServiceProvider) IsDeferred() bool   { return true }
func (p *RedisServiceProvider) Provides() []string { return []string{"redis"} }

func (p *RedisServiceProvider) Register(app *container.Container) {
	app.Singleton("redis", func(c *container.Container) (any, error) {
		client, err := database.Redis(context.Background(), conf(c).Redis, logger(c))
		if err != nil {
			return nil, err
		}
		shutdown(c).Add(func() error {
			if err := client.Close(); err != nil {
				return fmt.Errorf("redis: close: %w", err)
			}
			return nil
		})
		return client, nil
	})
}
