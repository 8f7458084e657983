// Package config reads server settings from flags with environment
// variable fallbacks.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/erazemk/pantryscan/internal/imaging"
	"github.com/erazemk/pantryscan/internal/inventory"
	"github.com/erazemk/pantryscan/internal/lookup"
)

// Config holds everything cmd/pantryscan needs to start.
type Config struct {
	DBPath         string
	Addr           string
	LogPath        string
	LookupURL      string
	LookupTimeout  time.Duration
	RedisAddr      string
	LookupCacheTTL time.Duration
	SweepInterval  time.Duration
	ExpiringDays   int
	PageSize       int
	ThumbnailSize  int
}

const usage = `Usage: pantryscan [flags]

Flags:
  -d, -db <path>              SQLite database path (default: pantryscan.sqlite3)  [PANTRY_DB]
  -a, -addr <host:port>       listen address (default: :8080)                     [PANTRY_ADDR]
  -l, -log <path>             log file path (default: stdout/stderr only)         [PANTRY_LOG]
      -lookup-url <url>       product lookup base URL                             [PANTRY_LOOKUP_URL]
      -lookup-timeout <dur>   product lookup timeout (default: 10s)               [PANTRY_LOOKUP_TIMEOUT]
      -redis <host:port>      Redis address for the lookup cache (default: off)   [PANTRY_REDIS_ADDR]
      -lookup-cache-ttl <dur> Redis lookup cache TTL (default: 24h)               [PANTRY_LOOKUP_CACHE_TTL]
      -sweep <dur>            spoilage sweep interval, 0 disables (default: 1h)   [PANTRY_SWEEP_INTERVAL]
      -expiring-days <n>      expiring-soon threshold in days (default: 3)        [PANTRY_EXPIRING_DAYS]
      -page-size <n>          items per page (default: 10)                        [PANTRY_PAGE_SIZE]
      -thumb-size <px>        thumbnail bounding box (default: 256)               [PANTRY_THUMB_SIZE]
  -h, -help                   show this help and exit

Environment variables are used when the flag is not given.
`

// Load parses args (without the program name). getenv supplies the
// environment fallbacks; pass os.Getenv. Load returns flag.ErrHelp when
// help was requested.
func Load(args []string, getenv func(string) string, out io.Writer) (*Config, error) {
	env := envDefaults{getenv: getenv}
	cfg := &Config{
		DBPath:         env.str("PANTRY_DB", "pantryscan.sqlite3"),
		Addr:           env.str("PANTRY_ADDR", ":8080"),
		LogPath:        env.str("PANTRY_LOG", ""),
		LookupURL:      env.str("PANTRY_LOOKUP_URL", lookup.DefaultBaseURL),
		LookupTimeout:  env.duration("PANTRY_LOOKUP_TIMEOUT", lookup.DefaultTimeout),
		RedisAddr:      env.str("PANTRY_REDIS_ADDR", ""),
		LookupCacheTTL: env.duration("PANTRY_LOOKUP_CACHE_TTL", lookup.DefaultCacheTTL),
		SweepInterval:  env.duration("PANTRY_SWEEP_INTERVAL", time.Hour),
		ExpiringDays:   env.integer("PANTRY_EXPIRING_DAYS", inventory.DefaultExpiringDays),
		PageSize:       env.integer("PANTRY_PAGE_SIZE", inventory.DefaultPageSize),
		ThumbnailSize:  env.integer("PANTRY_THUMB_SIZE", imaging.ThumbnailSize),
	}
	if env.err != nil {
		return nil, env.err
	}

	fs := flag.NewFlagSet("pantryscan", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	fs.StringVar(&cfg.LookupURL, "lookup-url", cfg.LookupURL, "")
	fs.DurationVar(&cfg.LookupTimeout, "lookup-timeout", cfg.LookupTimeout, "")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "")
	fs.DurationVar(&cfg.LookupCacheTTL, "lookup-cache-ttl", cfg.LookupCacheTTL, "")
	fs.DurationVar(&cfg.SweepInterval, "sweep", cfg.SweepInterval, "")
	fs.IntVar(&cfg.ExpiringDays, "expiring-days", cfg.ExpiringDays, "")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "")
	fs.IntVar(&cfg.ThumbnailSize, "thumb-size", cfg.ThumbnailSize, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.DBPath == "":
		return fmt.Errorf("database path is required")
	case c.LookupTimeout <= 0:
		return fmt.Errorf("lookup timeout must be positive, got %s", c.LookupTimeout)
	case c.SweepInterval < 0:
		return fmt.Errorf("sweep interval must not be negative, got %s", c.SweepInterval)
	case c.ExpiringDays < 0:
		return fmt.Errorf("expiring days must not be negative, got %d", c.ExpiringDays)
	case c.PageSize <= 0:
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	case c.ThumbnailSize <= 0:
		return fmt.Errorf("thumbnail size must be positive, got %d", c.ThumbnailSize)
	}
	return nil
}

// envDefaults reads typed environment values and keeps the first parse
// error.
type envDefaults struct {
	getenv func(string) string
	err    error
}

func (e *envDefaults) lookup(key string) string {
	if e.getenv == nil {
		return ""
	}
	return e.getenv(key)
}

func (e *envDefaults) str(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e *envDefaults) duration(key string, def time.Duration) time.Duration {
	v := e.lookup(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("parsing %s: %w", key, err)
	}
	if err != nil {
		return def
	}
	return d
}

func (e *envDefaults) integer(key string, def int) int {
	v := e.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("parsing %s: %w", key, err)
		}
		return def
	}
	return n
}
