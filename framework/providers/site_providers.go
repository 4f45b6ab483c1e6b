package providers

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/contact"
	"github.com/km-arc/go-portfolio/contact/redisqueue"
	"github.com/km-arc/go-portfolio/contact/sqlitestore"
	"github.com/km-arc/go-portfolio/framework/container"
	gohttp "github.com/km-arc/go-portfolio/framework/http"
	"github.com/km-arc/go-portfolio/framework/http/validation"
	"github.com/km-arc/go-portfolio/framework/routing"
	"github.com/km-arc/go-portfolio/projects"
	"github.com/km-arc/go-portfolio/reveal"
	"github.com/km-arc/go-portfolio/site"
	"github.com/km-arc/go-portfolio/theme"
)

// ── ContactServiceProvider ───────────────────────────────────────────────────

// ContactServiceProvider binds the contact service and its delivery driver
// (CONTACT_DRIVER: log, sqlite or redis) and routes the JSON endpoints.
//
// Bound abstracts:
//   - "contact.submitter" → contact.Submitter
//   - "contact"           → *contact.Service
type ContactServiceProvider struct {
	container.BaseProvider
}

func (p *ContactServiceProvider) Register(app *container.Container) {
	app.Singleton("contact.submitter", func(c *container.Container) (any, error) {
		cfg := conf(c).Contact
		log := logger(c)

		switch cfg.Driver {
		case "", "log":
			return contact.LogSubmitter{Logger: log.Named("contact")}, nil
		case "sqlite":
			store, err := sqlitestore.Open(context.Background(), cfg.SQLitePath, log)
			if err != nil {
				return nil, err
			}
			shutdown(c).Add(store.Close)
			return store, nil
		case "redis":
			client, err := container.Resolve[*redis.Client](c, "redis")
			if err != nil {
				return nil, err
			}
			return redisqueue.New(client, cfg.Stream, cfg.StreamMax), nil
		}
		return nil, fmt.Errorf("contact: unknown driver %q", cfg.Driver)
	})

	app.Singleton("contact", func(c *container.Container) (any, error) {
		engine, err := container.Resolve[*validation.Engine](c, "validation")
		if err != nil {
			return nil, err
		}
		order, err := container.Resolve[[]string](c, "validation.order")
		if err != nil {
			return nil, err
		}
		sub, err := container.Resolve[contact.Submitter](c, "contact.submitter")
		if err != nil {
			return nil, err
		}
		return contact.NewService(engine, sub, logger(c), contact.WithOrder(order)), nil
	})
}

func (p *ContactServiceProvider) Boot(app *container.Container) error {
	svc, err := container.Resolve[*contact.Service](app, "contact")
	if err != nil {
		return err
	}
	h := contact.NewHandler(svc)
	router(app).Prefix("/api/contact", func(r *routing.Router) {
		r.Middleware(middleware.AllowContentType("application/json", "application/x-www-form-urlencoded"))
		r.Post("/", h.Store)
		r.Post("/validate", h.Check)
	})
	return nil
}

// ── ThemeServiceProvider ─────────────────────────────────────────────────────

// ThemeServiceProvider binds the theme service over THEME_DRIVER (memory or
// redis) and routes the toggle endpoints.
//
// Bound abstracts:
//   - "theme.store"   → theme.Store
//   - "theme"         → *theme.Service
//   - "theme.handler" → *theme.Handler
type ThemeServiceProvider struct {
	container.BaseProvider
}

func (p *ThemeServiceProvider) Register(app *container.Container) {
	app.Singleton("theme.store", func(c *container.Container) (any, error) {
		cfg := conf(c).Theme
		switch cfg.Driver {
		case "", "memory":
			return theme.NewMemoryStore(), nil
		case "redis":
			client, err := container.Resolve[*redis.Client](c, "redis")
			if err != nil {
				return nil, err
			}
			return theme.NewRedisStore(client, cfg.TTL), nil
		}
		return nil, fmt.Errorf("theme: unknown driver %q", cfg.Driver)
	})

	app.Singleton("theme", func(c *container.Container) (any, error) {
		store, err := container.Resolve[theme.Store](c, "theme.store")
		if err != nil {
			return nil, err
		}
		fallback, err := theme.Parse(conf(c).Theme.Default)
		if err != nil {
			return nil, err
		}
		return theme.NewService(store, fallback, logger(c).Named("theme")), nil
	})

	app.Singleton("theme.handler", func(c *container.Container) (any, error) {
		svc, err := container.Resolve[*theme.Service](c, "theme")
		if err != nil {
			return nil, err
		}
		cfg := conf(c).Theme
		return theme.NewHandler(svc, cfg.Cookie, cfg.TTL), nil
	})
}

func (p *ThemeServiceProvider) Boot(app *container.Container) error {
	h, err := container.Resolve[*theme.Handler](app, "theme.handler")
	if err != nil {
		return err
	}
	r := router(app)
	r.Prefix("/api/theme", func(r *routing.Router) {
		r.Middleware(middleware.NoCache)
		r.Get("/", h.Show)
		r.Post("/toggle", h.Toggle)
	})
	r.Post("/theme/toggle", h.ToggleForm)
	return nil
}

// ── ProjectsServiceProvider ──────────────────────────────────────────────────

// ProjectsServiceProvider loads the project catalog, watches it when
// PROJECTS_WATCH is set, and routes the JSON grid.
//
// Bound abstracts:
//   - "projects.catalog" → *projects.Catalog
//   - "projects"         → *projects.Pager
type ProjectsServiceProvider struct {
	container.BaseProvider
}

func (p *ProjectsServiceProvider) Register(app *container.Container) {
	app.Singleton("projects.catalog", func(c *container.Container) (any, error) {
		path := conf(c).Projects.File
		catalog, err := projects.Load(path)
		if err != nil {
			return nil, err
		}
		logger(c).Info("project catalog loaded", zap.String("path", path), zap.Int("projects", catalog.Len()))
		return catalog, nil
	})
	app.Singleton("projects", func(c *container.Container) (any, error) {
		catalog, err := container.Resolve[*projects.Catalog](c, "projects.catalog")
		if err != nil {
			return nil, err
		}
		cfg := conf(c).Projects
		return projects.NewPager(catalog, cfg.Visible, cfg.PerLoad), nil
	})
}

func (p *ProjectsServiceProvider) Boot(app *container.Container) error {
	pager, err := container.Resolve[*projects.Pager](app, "projects")
	if err != nil {
		return err
	}

	cfg := conf(app).Projects
	if cfg.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		if err := projects.Watch(ctx, cfg.File, pager.Catalog, logger(app).Named("projects")); err != nil {
			cancel()
			return err
		}
		shutdown(app).Add(func() error { cancel(); return nil })
	}

	h := projects.NewHandler(pager)
	router(app).Prefix("/api/projects", func(r *routing.Router) {
		r.Get("/", h.Index)
		r.Get("/{slug}", h.Show)
	})
	return nil
}

// ── SiteServiceProvider ──────────────────────────────────────────────────────

// SiteServiceProvider binds the page controller and routes the HTML pages,
// the static assets and the health check.
//
// Bound abstracts:
//   - "reveal" → *reveal.Registry
//   - "site"   → *site.Controller
type SiteServiceProvider struct {
	container.BaseProvider
}

func (p *SiteServiceProvider) Register(app *container.Container) {
	app.Singleton("reveal", func(*container.Container) (any, error) {
		return reveal.Default(), nil
	})
	app.Singleton("site", func(c *container.Container) (any, error) {
		views, err := container.Resolve[*gohttp.ViewEngine](c, "view")
		if err != nil {
			return nil, err
		}
		svc, err := container.Resolve[*contact.Service](c, "contact")
		if err != nil {
			return nil, err
		}
		themes, err := container.Resolve[*theme.Handler](c, "theme.handler")
		if err != nil {
			return nil, err
		}
		pager, err := container.Resolve[*projects.Pager](c, "projects")
		if err != nil {
			return nil, err
		}
		registry, err := container.Resolve[*reveal.Registry](c, "reveal")
		if err != nil {
			return nil, err
		}
		return &site.Controller{
			App:      conf(c).App.Name,
			Views:    views,
			Contacts: svc,
			Themes:   themes,
			Pager:    pager,
			Reveal:   registry,
			Logger:   logger(c).Named("site"),
		}, nil
	})
}

func (p *SiteServiceProvider) Boot(app *container.Container) error {
	ctrl, err := container.Resolve[*site.Controller](app, "site")
	if err != nil {
		return err
	}
	r := router(app)
	r.Get("/", ctrl.Index)
	r.Post("/contact", ctrl.Contact)
	r.Get("/healthz", ctrl.Health)
	r.Static("/assets", conf(app).Views.Assets)
	return nil
}
