package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Davi3103/chamados4/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
	Upload       UploadConfig
	TicketNumber TicketNumberConfig
	Categories   CategoryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig describes the outbound email collaborator.
type NotificationConfig struct {
	Recipient    string
	From         string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// Enabled reports whether notifications should be attempted at all.
func (n NotificationConfig) Enabled() bool {
	return n.Recipient != "" && n.SMTPHost != ""
}

// UploadConfig is the attachment acceptance policy.
type UploadConfig struct {
	Dir               string
	MaxSizeBytes      int64
	AllowedExtensions []string
	AllowedMimeTypes  []string
}

// TicketNumberConfig tunes ticket number generation.
type TicketNumberConfig struct {
	Prefix      string
	MaxAttempts int
}

// CategoryConfig maps submission category keys to stable identifiers.
type CategoryConfig struct {
	Table    map[string]int64
	Fallback string
}

// FallbackID returns the identifier unknown categories resolve to.
func (c CategoryConfig) FallbackID() int64 {
	return c.Table[c.Fallback]
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	categories, err := parseCategoryTable(os.Getenv("TICKET_CATEGORIES"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-intake-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			Recipient:    os.Getenv("NOTIFY_RECIPIENT"),
			From:         getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		},
		Upload: UploadConfig{
			Dir:               getEnv("UPLOAD_DIR", "uploads"),
			MaxSizeBytes:      int64(getEnvAsInt("UPLOAD_MAX_SIZE_MB", 10)) * 1024 * 1024,
			AllowedExtensions: getEnvAsList("UPLOAD_ALLOWED_EXTENSIONS", defaultExtensions),
			AllowedMimeTypes:  getEnvAsList("UPLOAD_ALLOWED_MIME_TYPES", defaultMimeTypes),
		},
		TicketNumber: TicketNumberConfig{
			Prefix:      getEnv("TICKET_NUMBER_PREFIX", "TKT"),
			MaxAttempts: getEnvAsInt("TICKET_NUMBER_MAX_ATTEMPTS", 5),
		},
		Categories: CategoryConfig{
			Table:    categories,
			Fallback: domain.CategoryFallbackKey,
		},
	}

	if _, ok := cfg.Categories.Table[cfg.Categories.Fallback]; !ok {
		return nil, fmt.Errorf("category table is missing the %q fallback", cfg.Categories.Fallback)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

var defaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".pdf", ".doc", ".docx", ".txt", ".log", ".zip",
}

var defaultMimeTypes = []string{
	"image/jpeg", "image/png", "image/gif", "application/pdf",
	"application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain", "application/zip", "application/octet-stream",
}

// DefaultCategoryTable returns the built-in category key to id mapping. The
// identifiers follow the declaration order of domain.CategoryKeys and match
// the seeded categories table.
func DefaultCategoryTable() map[string]int64 {
	table := make(map[string]int64, len(domain.CategoryKeys))
	for i, key := range domain.CategoryKeys {
		table[key] = int64(i + 1)
	}
	return table
}

// parseCategoryTable reads a "key:id,key:id" override, falling back to the
// built-in table when unset.
func parseCategoryTable(raw string) (map[string]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultCategoryTable(), nil
	}
	table := make(map[string]int64)
	for _, pair := range strings.Split(raw, ",") {
		key, idStr, found := strings.Cut(strings.TrimSpace(pair), ":")
		if !found {
			return nil, fmt.Errorf("invalid TICKET_CATEGORIES entry %q", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TICKET_CATEGORIES id in %q: %w", pair, err)
		}
		table[strings.TrimSpace(key)] = id
	}
	return table, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
