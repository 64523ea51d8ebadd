package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	GRPCPort string
	LogLevel string

	DB DBConfig

	RedisAddr string

	KafkaBrokers []string
	EventsTopic  string
	AuditTopic   string

	PublisherPollInterval time.Duration
	PublisherBatchSize    int
	PublisherMaxAttempts  int

	JWTSecret string
	TokenTTL  time.Duration

	TimeZone       string
	Calendar       string
	KeySequence    string
	MaxKeyAttempts int

	AdminUsername string
	AdminPassword string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// loadEnv looks for a .env file next to the working directory and up to two
// levels above it, falling back to .example.env.
func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Error getting working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}

	for _, envPath := range possiblePaths {
		examplePath := filepath.Join(filepath.Dir(envPath), ".example.env")
		if err := godotenv.Load(examplePath); err == nil {
			log.Printf("Loaded environment variables from %s", examplePath)
			return
		}
	}
}

// Load reads .env (when present) and builds the configuration from the process
// environment.
func Load() (*Config, error) {
	loadEnv()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	dbPort, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	batchSize, err := intEnv("OUTBOX_BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := intEnv("OUTBOX_MAX_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	keyAttempts, err := intEnv("SECRET_KEY_MAX_ATTEMPTS", 20)
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationEnv("OUTBOX_POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationEnv("JWT_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort: stringEnv("HTTP_PORT", "9000"),
		GRPCPort: stringEnv("GRPC_PORT", "9001"),
		LogLevel: stringEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:     stringEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     stringEnv("POSTGRES_USER", "postgres"),
			Password: stringEnv("POSTGRES_PASSWORD", "postgres"),
			Name:     stringEnv("POSTGRES_DB", "printdesk"),
			SSLMode:  stringEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:             stringEnv("REDIS_ADDR", ""),
		KafkaBrokers:          listEnv("KAFKA_BROKERS"),
		EventsTopic:           stringEnv("KAFKA_EVENTS_TOPIC", "order_events"),
		AuditTopic:            stringEnv("KAFKA_AUDIT_TOPIC", "audit_logs"),
		PublisherPollInterval: pollInterval,
		PublisherBatchSize:    batchSize,
		PublisherMaxAttempts:  maxAttempts,
		JWTSecret:             stringEnv("JWT_SECRET", ""),
		TokenTTL:              tokenTTL,
		TimeZone:              stringEnv("TIME_ZONE", "UTC"),
		Calendar:              strings.ToLower(stringEnv("CALENDAR", "gregorian")),
		KeySequence:           strings.ToLower(stringEnv("SECRET_KEY_SEQUENCE", "postgres")),
		MaxKeyAttempts:        keyAttempts,
		AdminUsername:         os.Getenv("ADMIN_USERNAME"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Calendar {
	case "gregorian", "jalali":
	default:
		return fmt.Errorf("unsupported CALENDAR %q", c.Calendar)
	}
	switch c.KeySequence {
	case "postgres":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SECRET_KEY_SEQUENCE=redis")
		}
	default:
		return fmt.Errorf("unsupported SECRET_KEY_SEQUENCE %q", c.KeySequence)
	}
	if c.MaxKeyAttempts <= 0 {
		return fmt.Errorf("SECRET_KEY_MAX_ATTEMPTS must be positive")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location is safe to call after FromEnv succeeded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func stringEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func listEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
