package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimit          string

	// OTP policy
	OTPLength          int
	OTPTTL             time.Duration
	OTPMaxTTL          time.Duration
	OTPResendCooldown  time.Duration
	OTPCleanupSchedule string

	// Ledger
	LedgerMaxRetries         uint64
	LedgerRetryBaseDelay     time.Duration
	AccountNumberLength      int
	AccountNumberMaxAttempts int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_MAX_TTL", "60m")
	v.SetDefault("OTP_RESEND_COOLDOWN", "1m")
	v.SetDefault("OTP_CLEANUP_SCHEDULE", "@every 15m")
	v.SetDefault("LEDGER_MAX_RETRIES", 3)
	v.SetDefault("LEDGER_RETRY_BASE_DELAY", "25ms")
	v.SetDefault("ACCOUNT_NUMBER_LENGTH", 10)
	v.SetDefault("ACCOUNT_NUMBER_MAX_ATTEMPTS", 5)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		OTPLength:          v.GetInt("OTP_LENGTH"),
		OTPCleanupSchedule: strings.TrimSpace(v.GetString("OTP_CLEANUP_SCHEDULE")),
		LedgerMaxRetries:   v.GetUint64("LEDGER_MAX_RETRIES"),

		AccountNumberLength:      v.GetInt("ACCOUNT_NUMBER_LENGTH"),
		AccountNumberMaxAttempts: v.GetInt("ACCOUNT_NUMBER_MAX_ATTEMPTS"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.OTPLength < 4 || cfg.OTPLength > 8 {
		log.Printf("Warning: OTP_LENGTH (%d) must be between 4 and 8. Defaulting to 6.\n", cfg.OTPLength)
		cfg.OTPLength = 6
	}

	cfg.OTPTTL = duration(v, "OTP_TTL", 5*time.Minute)
	cfg.OTPMaxTTL = duration(v, "OTP_MAX_TTL", time.Hour)
	cfg.OTPResendCooldown = duration(v, "OTP_RESEND_COOLDOWN", time.Minute)
	cfg.LedgerRetryBaseDelay = duration(v, "LEDGER_RETRY_BASE_DELAY", 25*time.Millisecond)

	if cfg.OTPMaxTTL < cfg.OTPTTL {
		log.Printf("Warning: OTP_MAX_TTL (%s) is below OTP_TTL (%s). Raising it to match.\n", cfg.OTPMaxTTL, cfg.OTPTTL)
		cfg.OTPMaxTTL = cfg.OTPTTL
	}

	return cfg
}

// duration parses key as a time.Duration, falling back to def on bad input.
func duration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
