package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Brain   BrainConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string // empty disables NATS
	RedisURL           string // empty keeps sessions in memory
	JwtSecret          string // empty leaves the API open
}

type SessionConfig struct {
	TTL           time.Duration
	CleanupPeriod time.Duration
	EventTopic    string
}

// BrainConfig overrides the initial settings of newly opened views.
type BrainConfig struct {
	DefaultHeight          int
	ValueLengthCutoff      int
	MinimizeVerbatimBlocks bool
	ColorScheme            string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64 // fraction of root spans kept, 0..1
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/brain.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/context-events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Session: SessionConfig{
			TTL:           time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			CleanupPeriod: time.Duration(getEnvAsInt("SESSION_CLEANUP_MINUTES", 10)) * time.Minute,
			EventTopic:    getEnv("CONTEXT_EVENT_TOPIC", "BRAIN_CONTEXT_EVENTS"),
		},
		Brain: BrainConfig{
			DefaultHeight:          getEnvAsInt("BRAIN_DEFAULT_HEIGHT", 2),
			ValueLengthCutoff:      getEnvAsInt("BRAIN_VALUE_LENGTH_CUTOFF", 100),
			MinimizeVerbatimBlocks: getEnvAsBool("BRAIN_MINIMIZE_VERBATIM_BLOCKS", false),
			ColorScheme:            getEnv("BRAIN_COLOR_SCHEME", "dark"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "brain-session-service"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
