package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Backend stores settings for the AgriTeranga REST backend.
type Backend struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Retry describes the read-path retry behaviour of the backend gateway.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Poll stores the store's refresh scheduling settings.
type Poll struct {
	Interval    time.Duration
	Stagger     time.Duration
	SettleDelay time.Duration
	PageSize    int
}

// Kafka stores the optional notification producer settings.
// Empty brokers disable the Kafka notifier.
type Kafka struct {
	Brokers []string
	Topic   string
}

// RateLimit stores the dashboard facade per-client limit.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// Pprof stores the optional debug server settings. Empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores courier dashboard settings.
type Config struct {
	Port      int
	Backend   Backend
	Retry     Retry
	Poll      Poll
	Kafka     Kafka
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		Backend:   DefaultBackend(),
		Retry:     DefaultRetry(),
		Poll:      DefaultPoll(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	cfg.Backend.BaseURL = envStr("BACKEND_URL", cfg.Backend.BaseURL)
	cfg.Backend.Token = envStr("BACKEND_TOKEN", cfg.Backend.Token)
	cfg.Backend.Timeout = envDuration("BACKEND_TIMEOUT", cfg.Backend.Timeout)

	cfg.Retry.MaxAttempts = envInt("GATEWAY_RETRY_ATTEMPTS", cfg.Retry.MaxAttempts)
	cfg.Retry.BaseDelay = envDuration("GATEWAY_RETRY_BASE_DELAY", cfg.Retry.BaseDelay)
	cfg.Retry.MaxDelay = envDuration("GATEWAY_RETRY_MAX_DELAY", cfg.Retry.MaxDelay)

	cfg.Poll.Interval = envDuration("POLL_INTERVAL", cfg.Poll.Interval)
	cfg.Poll.Stagger = envDuration("POLL_STAGGER", cfg.Poll.Stagger)
	cfg.Poll.SettleDelay = envDuration("POLL_SETTLE_DELAY", cfg.Poll.SettleDelay)
	cfg.Poll.PageSize = envInt("PAGE_SIZE", cfg.Poll.PageSize)

	if v := envStr("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.Topic = envStr("KAFKA_NOTIFICATIONS_TOPIC", cfg.Kafka.Topic)

	cfg.RateLimit.Limit = envInt("RATE_LIMIT", cfg.RateLimit.Limit)
	cfg.RateLimit.Window = envDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Pprof.Addr = envStr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envStr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envStr("PPROF_PASS", cfg.Pprof.Pass)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Backend.BaseURL, "backend-url", cfg.Backend.BaseURL, "AgriTeranga backend base URL")
	pflag.DurationVar(&cfg.Poll.Interval, "poll-interval", cfg.Poll.Interval, "background refresh interval")
	pflag.Parse()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url: %q", c.Backend.BaseURL)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("invalid poll interval: %v", c.Poll.Interval)
	}
	if c.Poll.Stagger < 0 || c.Poll.SettleDelay < 0 {
		return fmt.Errorf("negative poll delay")
	}
	if c.Poll.PageSize <= 0 {
		return fmt.Errorf("invalid page size: %d", c.Poll.PageSize)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("invalid retry attempts: %d", c.Retry.MaxAttempts)
	}
	return nil
}

func envStr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
