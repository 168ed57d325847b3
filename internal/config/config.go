package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Supported narration providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string
	DBDriver string
	DBConn   string

	DARTAPIKey  string
	DARTURL     string
	DARTTimeout time.Duration

	DefaultYear       string
	DefaultReportType string

	NarratorProvider  string
	NarratorAPIKey    string
	NarratorURL       string
	NarratorModel     string
	NarratorMaxTokens int
	NarratorTimeout   time.Duration

	CorpCodeXMLPath         string
	CorpCodeRefreshSchedule string

	dartEnabled     bool
	narratorEnabled bool
}

// NewConfig loads configuration from environment variables, reading a .env file first if present
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DBDriver:                getEnv("DB_DRIVER", DriverSQLite),
		DBConn:                  getEnv("DB_CONN", "companies.db"),
		DARTAPIKey:              strings.TrimSpace(getEnv("DART_API_KEY", "")),
		DARTURL:                 getEnv("DART_API_URL", "https://opendart.fss.or.kr/api"),
		DefaultYear:             getEnv("DEFAULT_YEAR", "2023"),
		DefaultReportType:       getEnv("DEFAULT_REPORT_TYPE", "11011"),
		NarratorProvider:        strings.ToLower(getEnv("NARRATOR_PROVIDER", ProviderOpenAI)),
		NarratorAPIKey:          strings.TrimSpace(getEnv("NARRATOR_API_KEY", "")),
		NarratorURL:             getEnv("NARRATOR_API_URL", ""),
		NarratorModel:           getEnv("NARRATOR_MODEL", ""),
		CorpCodeXMLPath:         getEnv("CORPCODE_XML_PATH", ""),
		CorpCodeRefreshSchedule: getEnv("CORPCODE_REFRESH_SCHEDULE", ""),
	}

	var err error
	if cfg.DARTTimeout, err = getEnvDuration("DART_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.NarratorTimeout, err = getEnvDuration("NARRATOR_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.NarratorMaxTokens, err = getEnvInt("NARRATOR_MAX_TOKENS", 2000); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.NarratorProvider != ProviderOpenAI && cfg.NarratorProvider != ProviderGemini {
		return nil, fmt.Errorf("unsupported NARRATOR_PROVIDER %q", cfg.NarratorProvider)
	}
	if cfg.NarratorModel == "" {
		cfg.NarratorModel = defaultModel(cfg.NarratorProvider)
	}
	// An empty URL leaves the Gemini SDK on its own endpoint.
	if cfg.NarratorURL == "" && cfg.NarratorProvider == ProviderOpenAI {
		cfg.NarratorURL = "https://api.openai.com/v1"
	}

	cfg.dartEnabled = cfg.DARTAPIKey != ""
	cfg.narratorEnabled = cfg.NarratorAPIKey != ""

	return cfg, nil
}

// DARTEnabled reports whether a disclosure API key was configured
func (c *Config) DARTEnabled() bool {
	return c.dartEnabled
}

// NarratorEnabled reports whether a narration credential was configured
func (c *Config) NarratorEnabled() bool {
	return c.narratorEnabled
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "gpt-4o-mini"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
