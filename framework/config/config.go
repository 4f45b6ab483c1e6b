package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Views    ViewConfig
	Contact  ContactConfig
	Redis    RedisConfig
	Theme    ThemeConfig
	Projects ProjectsConfig
}

type AppConfig struct {
	Name            string
	Env             string // local | production | testing
	Debug           bool
	URL             string
	Port            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

type ViewConfig struct {
	Dir    string
	Ext    string
	Layout string
	Assets string // served under /assets
}

type ContactConfig struct {
	Driver     string // log | sqlite | redis
	SQLitePath string
	Stream     string // redis stream key
	StreamMax  int64  // approximate stream cap, 0 for unbounded
	RulesFile  string // optional YAML rule table, defaults to the built-in contact rules
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

type ThemeConfig struct {
	Driver  string // memory | redis
	Cookie  string
	Default string // light | dark
	TTL     time.Duration
}

type ProjectsConfig struct {
	File    string
	Visible int
	PerLoad int
	Watch   bool
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:            env("APP_NAME", "Portfolio"),
			Env:             env("APP_ENV", "local"),
			Debug:           envBool("APP_DEBUG", true),
			URL:             env("APP_URL", "http://localhost"),
			Port:            env("APP_PORT", "8000"),
			ShutdownTimeout: envDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
		},
		Views: ViewConfig{
			Dir:    env("VIEW_DIR", "./views"),
			Ext:    env("VIEW_EXT", ".html"),
			Layout: env("VIEW_LAYOUT", "layout"),
			Assets: env("VIEW_ASSETS", "./public"),
		},
		Contact: ContactConfig{
			Driver:     env("CONTACT_DRIVER", "log"),
			SQLitePath: env("CONTACT_SQLITE_PATH", "storage/contact.db"),
			Stream:     env("CONTACT_STREAM", "contact:submissions"),
			StreamMax:  int64(GetInt("CONTACT_STREAM_MAXLEN", 10000)),
			RulesFile:  env("CONTACT_RULES_FILE", ""),
		},
		Redis: RedisConfig{
			Addr:        env("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    env("REDIS_PASSWORD", ""),
			DB:          GetInt("REDIS_DB", 0),
			DialTimeout: envDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
		},
		Theme: ThemeConfig{
			Driver:  env("THEME_DRIVER", "memory"),
			Cookie:  env("THEME_COOKIE", "visitor"),
			Default: env("THEME_DEFAULT", "light"),
			TTL:     envDuration("THEME_TTL", 365*24*time.Hour),
		},
		Projects: ProjectsConfig{
			File:    env("PROJECTS_FILE", "./projects.yaml"),
			Visible: GetInt("PROJECTS_VISIBLE", 6),
			PerLoad: GetInt("PROJECTS_PER_LOAD", 3),
			Watch:   envBool("PROJECTS_WATCH", false),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
