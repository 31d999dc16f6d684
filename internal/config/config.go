package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config es la configuración de runtime; sale de env y de .env si existe.
type Config struct {
	Port string

	StoreBackend   string
	DBDSN          string
	MigrateOnStart bool

	LogLevel  string
	LogFormat string
	AppName   string

	SupabaseJWTSecret string
	SupabaseAudience  string

	NotifyWebhookURL string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
	ReminderCron       string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load lee .env (opcional) y luego el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DBDSN:              os.Getenv("DB_DSN"),
		MigrateOnStart:     getBool("MIGRATE_ON_START", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		AppName:            getEnv("APP_NAME", "pet-grooming-manager"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		SupabaseAudience:   getEnv("SUPABASE_JWT_AUDIENCE", "authenticated"),
		NotifyWebhookURL:   os.Getenv("NOTIFY_WEBHOOK_URL"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),
		ReminderCron:       getEnv("REMINDER_CRON", "0 9 * * *"),
		ReadTimeout:        getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:       getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:        getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	// Sin STORE_BACKEND explícito: postgres si hay DSN, si no memoria.
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendMemory
		if cfg.DBDSN != "" {
			cfg.StoreBackend = BackendPostgres
		}
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DBDSN == "" {
			return cfg, errors.New("DB_DSN is required when STORE_BACKEND=postgres")
		}
	default:
		return cfg, fmt.Errorf("unknown STORE_BACKEND %q (memory|postgres)", cfg.StoreBackend)
	}

	return cfg, nil
}

// TwilioEnabled: sin las tres variables los recordatorios solo se loguean.
func (c Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

// RemindersEnabled: REMINDER_CRON=off apaga el cron dentro de serve.
func (c Config) RemindersEnabled() bool {
	return !strings.EqualFold(c.ReminderCron, "off")
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func getBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Segundos sin sufijo.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
