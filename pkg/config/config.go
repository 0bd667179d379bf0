package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	// ProposalStoreMemory keeps generated proposals in process memory.
	ProposalStoreMemory = "memory"
	// ProposalStoreRedis shares proposals across instances through Redis.
	ProposalStoreRedis = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Proposals ProposalsConfig
	Feedback  FeedbackConfig
	RateLimit RateLimitConfig
	Citations CitationsConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig fixes the weekly grid geometry and decides whether the
// preferred-days and max-hours preferences are enforced or merely scored.
type SchedulerConfig struct {
	Days              []string
	SlotMinutes       int
	PreferredDaysHard bool
	MaxHoursHard      bool
	StepBudget        int
}

// ProposalsConfig governs retention of generated timetable proposals.
type ProposalsConfig struct {
	TTL   time.Duration
	Store string
}

// FeedbackConfig controls feedback retention and email notification.
type FeedbackConfig struct {
	SendGridAPIKey string
	MailTo         string
	MailFrom       string
	MaxEntries     int
	WorkerRetries  int
}

// RateLimitConfig sets per-client request budgets per endpoint tier.
type RateLimitConfig struct {
	Enabled           bool
	LightweightPerMin int
	ExportPerMin      int
	LookupPerMin      int
}

// CitationsConfig points the citation generator at the CrossRef API.
type CitationsConfig struct {
	CrossRefBaseURL string
	Timeout         time.Duration
	ContactEmail    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Days:              splitAndTrim(v.GetString("SCHEDULER_DAYS")),
		SlotMinutes:       v.GetInt("SCHEDULER_SLOT_MINUTES"),
		PreferredDaysHard: v.GetBool("SCHEDULER_PREFERRED_DAYS_HARD"),
		MaxHoursHard:      v.GetBool("SCHEDULER_MAX_HOURS_HARD"),
		StepBudget:        v.GetInt("SCHEDULER_STEP_BUDGET"),
	}

	cfg.Proposals = ProposalsConfig{
		TTL:   parseDuration(v.GetString("PROPOSAL_TTL"), 30*time.Minute),
		Store: v.GetString("PROPOSAL_STORE"),
	}

	cfg.Feedback = FeedbackConfig{
		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		MailTo:         v.GetString("FEEDBACK_MAIL_TO"),
		MailFrom:       v.GetString("FEEDBACK_MAIL_FROM"),
		MaxEntries:     v.GetInt("FEEDBACK_MAX_ENTRIES"),
		WorkerRetries:  v.GetInt("FEEDBACK_WORKER_RETRIES"),
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:           v.GetBool("RATE_LIMIT_ENABLED"),
		LightweightPerMin: v.GetInt("RATE_LIMIT_LIGHTWEIGHT_PER_MIN"),
		ExportPerMin:      v.GetInt("RATE_LIMIT_EXPORT_PER_MIN"),
		LookupPerMin:      v.GetInt("RATE_LIMIT_LOOKUP_PER_MIN"),
	}

	cfg.Citations = CitationsConfig{
		CrossRefBaseURL: v.GetString("CROSSREF_BASE_URL"),
		Timeout:         parseDuration(v.GetString("CROSSREF_TIMEOUT"), 15*time.Second),
		ContactEmail:    v.GetString("CROSSREF_CONTACT_EMAIL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_DAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("SCHEDULER_SLOT_MINUTES", 60)
	v.SetDefault("SCHEDULER_PREFERRED_DAYS_HARD", true)
	v.SetDefault("SCHEDULER_MAX_HOURS_HARD", false)
	v.SetDefault("SCHEDULER_STEP_BUDGET", 200000)

	v.SetDefault("PROPOSAL_TTL", "30m")
	v.SetDefault("PROPOSAL_STORE", ProposalStoreMemory)

	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("FEEDBACK_MAIL_TO", "")
	v.SetDefault("FEEDBACK_MAIL_FROM", "noreply@studentools.dev")
	v.SetDefault("FEEDBACK_MAX_ENTRIES", 500)
	v.SetDefault("FEEDBACK_WORKER_RETRIES", 3)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_LIGHTWEIGHT_PER_MIN", 60)
	v.SetDefault("RATE_LIMIT_EXPORT_PER_MIN", 20)
	v.SetDefault("RATE_LIMIT_LOOKUP_PER_MIN", 10)

	v.SetDefault("CROSSREF_BASE_URL", "https://api.crossref.org")
	v.SetDefault("CROSSREF_TIMEOUT", "15s")
	v.SetDefault("CROSSREF_CONTACT_EMAIL", "studentools@example.com")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
