package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	Timezone       string // IANA zone every booking date is interpreted in
	StoreBackend   string // "mysql" or "memory"
	SeedDemo       bool   // seed the memory store with the demo bookings
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	RabbitURL      string // AMQP broker URL; empty disables event publishing
	EventsConsumer bool   // run the booking audit consumer in-process
	AuditLogPath   string // file the audit consumer appends to
}

// LoadDotEnv loads a .env file from the working directory when one
// exists.  Variables already present in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// Load reads configuration values from environment variables.  The
// database settings are required only for the mysql backend.
func Load() (Config, error) {
	cfg := Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		Timezone:       envStr("APP_TIMEZONE", "America/Sao_Paulo"),
		StoreBackend:   strings.ToLower(envStr("STORE_BACKEND", StoreMySQL)),
		SeedDemo:       envBool("SEED_DEMO", false),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         envStr("DB_HOST", "localhost"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         os.Getenv("DB_NAME"),
		RabbitURL:      rabbitURL(),
		EventsConsumer: envBool("EVENTS_CONSUMER", false),
		AuditLogPath:   envStr("AUDIT_LOG_PATH", "logs/booking.log"),
	}
	switch cfg.StoreBackend {
	case StoreMemory:
	case StoreMySQL:
		for key, v := range map[string]string{"DB_USER": cfg.DBUser, "DB_NAME": cfg.DBName} {
			if v == "" {
				return Config{}, fmt.Errorf("missing required env var: %s", key)
			}
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q (want %s or %s)", cfg.StoreBackend, StoreMySQL, StoreMemory)
	}
	if _, err := parsePort(cfg.Port); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// rabbitURL honours RABBITMQ_URL, then AMQP_URL.  "off" disables the broker.
func rabbitURL() string {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	if strings.EqualFold(url, "off") {
		return ""
	}
	return url
}
