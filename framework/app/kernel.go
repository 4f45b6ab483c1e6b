// Package app assembles the site from its service providers and serves it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-portfolio/framework/config"
	"github.com/km-arc/go-portfolio/framework/container"
	"github.com/km-arc/go-portfolio/framework/providers"
	"github.com/km-arc/go-portfolio/framework/routing"
)

// Application is the site's container plus its provider registry, like $app
// in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application from .env files.
func New(envFiles ...string) *Application {
	return build(&providers.ConfigServiceProvider{EnvFiles: envFiles}, &providers.LoggingServiceProvider{})
}

// NewWith creates the application from a prepared config and logger. A nil
// logger is built from cfg.Log.
func NewWith(cfg *config.Config, logger *zap.Logger) *Application {
	return build(&providers.ConfigServiceProvider{Config: cfg}, &providers.LoggingServiceProvider{Logger: logger})
}

func build(core ...container.ServiceProvider) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)
	a := &Application{Container: c, Providers: registry}

	// Register never fails before Boot
	for _, p := range append(core,
		&providers.RoutingServiceProvider{},
		&providers.ViewServiceProvider{},
		&providers.ValidationServiceProvider{},
		&providers.RedisServiceProvider{},
		&providers.ContactServiceProvider{},
		&providers.ThemeServiceProvider{},
		&providers.ProjectsServiceProvider{},
		&providers.SiteServiceProvider{},
	) {
		_ = registry.Register(p)
	}
	return a
}

// Register adds a provider.
func (a *Application) Register(p container.ServiceProvider) error {
	return a.Providers.Register(p)
}

// Boot runs every provider's Boot. Resources opened so far are released
// when it fails.
func (a *Application) Boot() error {
	if err := a.Providers.Boot(); err != nil {
		_ = a.Close()
		return err
	}
	return nil
}

// Config resolves the configuration.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves the logger.
func (a *Application) Logger() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container, "logger")
}

// Router resolves the router.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Close releases everything the providers opened.
func (a *Application) Close() error {
	return container.MustResolve[*providers.Shutdown](a.Container, "shutdown").Close()
}

// Run boots the application if needed and serves HTTP on APP_PORT until ctx
// is cancelled, then drains requests for up to APP_SHUTDOWN_TIMEOUT.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	defer a.Close()

	cfg := a.Config()
	log := a.Logger()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: a.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("app", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.App.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// Environment helpers.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
