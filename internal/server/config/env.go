package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Only variables
// that are present override the current values, so the JSON/default layers
// survive an empty environment.
//
// Supported variables:
//
//	ADDRESS                 HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN
//	OPENAI_API_KEY          analysis provider credential
//	OPENAI_MODEL            analysis provider model name
//	ANALYSIS_MAX_ATTEMPTS   total provider attempts
//	ANALYSIS_BASE_BACKOFF   base backoff, Go duration string (e.g. "1s")
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
		config.OpenAIAPIKey = v
	}
	if v, ok := os.LookupEnv("OPENAI_MODEL"); ok {
		config.OpenAIModel = v
	}
	if v, ok := os.LookupEnv("ANALYSIS_MAX_ATTEMPTS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.AnalysisMaxAttempts = n
		}
	}
	if v, ok := os.LookupEnv("ANALYSIS_BASE_BACKOFF"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.AnalysisBaseBackoff = d
		}
	}
}
