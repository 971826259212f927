package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MasterPassword   string // Optional: shared master password; empty disables escalation
	MasterTOTPSecret string // Optional: base32 TOTP secret also required on escalation

	Issuer        string        // Issuer claim for session tokens (default: acs-portal)
	SessionTTL    time.Duration // Session token lifetime (default: 12h)
	NumKeys       int           // Number of active signing keys (default: 1, max: 5)
	KeyStorage    string        // persistent or ephemeral (default: persistent)
	KeySecretFile string        // Path to the secret sealing stored signing keys (default: ./signing.secret)
	KeyGrace      time.Duration // How long a retired key still verifies (default: SessionTTL)
	DatabaseFile  string        // Path to SQLite database file (default: ./portal.db)
	PepperFile    string        // Path to the password hashing pepper (default: ./pepper)
	PayslipURL    string        // Optional: where GET /v1/payslip redirects

	KVBackend string // sqlite or redis (default: sqlite)
	RedisURL  string // Required when KVBackend is redis

	NewsAPIKey   string        // Optional: news provider API key; empty disables news
	NewsBaseURL  string        // Optional: news provider base URL
	NewsModel    string        // Optional: news provider model
	NewsCacheTTL time.Duration // How long fetched news are served from cache (default: 6h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadDotEnv loads path into the environment if it exists. Variables that
// are already set win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig reads the environment. The master password is captured here
// once and never re-read.
func LoadConfig() Config {
	cfg := Config{
		MasterPassword:   os.Getenv("PORTAL_MASTER_PASSWORD"),
		MasterTOTPSecret: os.Getenv("PORTAL_MASTER_TOTP_SECRET"),

		Issuer:        getEnvOrDefault("PORTAL_ISSUER", "acs-portal"),
		SessionTTL:    getEnvDurationOrDefault("PORTAL_SESSION_TTL", 12*time.Hour),
		NumKeys:       getEnvIntOrDefault("PORTAL_NUM_KEYS", 1),
		KeyStorage:    getEnvOrDefault("PORTAL_KEY_STORAGE", "persistent"),
		KeySecretFile: getEnvOrDefault("PORTAL_KEY_SECRET_FILE", "signing.secret"),
		DatabaseFile:  getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		PepperFile:    getEnvOrDefault("PORTAL_PEPPER_FILE", "pepper"),
		PayslipURL:    os.Getenv("PORTAL_PAYSLIP_URL"),

		KVBackend: getEnvOrDefault("KV_BACKEND", "sqlite"),
		RedisURL:  os.Getenv("REDIS_URL"),

		NewsAPIKey:   os.Getenv("NEWS_API_KEY"),
		NewsBaseURL:  os.Getenv("NEWS_API_BASE_URL"),
		NewsModel:    os.Getenv("NEWS_MODEL"),
		NewsCacheTTL: getEnvDurationOrDefault("NEWS_CACHE_TTL", 6*time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
	cfg.KeyGrace = getEnvDurationOrDefault("PORTAL_KEY_GRACE", cfg.SessionTTL)
	return cfg
}

// Validate reports settings the server cannot start with. Every problem is
// returned, not just the first.
func (c Config) Validate() error {
	var errs []error

	switch c.KeyStorage {
	case "persistent", "ephemeral":
	default:
		errs = append(errs, fmt.Errorf("PORTAL_KEY_STORAGE must be persistent or ephemeral, got %q", c.KeyStorage))
	}

	switch c.KVBackend {
	case "sqlite":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("KV_BACKEND=redis requires REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("KV_BACKEND must be sqlite or redis, got %q", c.KVBackend))
	}

	if c.MasterTOTPSecret != "" && c.MasterPassword == "" {
		errs = append(errs, errors.New("PORTAL_MASTER_TOTP_SECRET is set but PORTAL_MASTER_PASSWORD is not"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("PORTAL_SESSION_TTL must be positive"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
