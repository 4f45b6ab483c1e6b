// Package container is the site's IoC container and service provider
// registry, modelled on Laravel's.
//
// Abstracts are strings and factories are explicit; a factory returns an
// error instead of panicking so a store that cannot connect stops startup
// with a message.
//
//	c := container.New()
//	c.Instance("config", cfg)
//	c.Singleton("projects.catalog", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return projects.Load(cfg.Projects.File)
//	})
//
//	catalog, err := container.Resolve[*projects.Catalog](c, "projects.catalog")
//
// # Providers
//
// Each part of the site ships a ServiceProvider. Register binds factories;
// Boot runs once every provider is registered and may resolve anything,
// which is where routes are added and background watchers started.
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&providers.ConfigServiceProvider{})
//	registry.Register(&providers.ThemeServiceProvider{})
//	if err := registry.Boot(); err != nil {
//	    return err
//	}
//
// A deferred provider registers on the first Make of one of its Provides
// abstracts. The Redis client is provided this way so a site that stores
// nothing in Redis never dials it.
package container
