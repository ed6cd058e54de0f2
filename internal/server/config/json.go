package config

import (
	"encoding/json"
	"os"

	"github.com/medassist/symptomchecker/internal/flagx"
	"github.com/medassist/symptomchecker/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	DatabaseDSN         string         `json:"database_dsn"`
	OpenAIAPIKey        string         `json:"openai_api_key"`
	OpenAIModel         string         `json:"openai_model"`
	AnalysisMaxAttempts int            `json:"analysis_max_attempts"`
	AnalysisBaseBackoff timex.Duration `json:"analysis_base_backoff"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config
// command-line flags; if neither is set, no JSON file is loaded. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	// only keys present in the file override the defaults
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.OpenAIAPIKey != "" {
		config.OpenAIAPIKey = c.OpenAIAPIKey
	}
	if c.OpenAIModel != "" {
		config.OpenAIModel = c.OpenAIModel
	}
	if c.AnalysisMaxAttempts > 0 {
		config.AnalysisMaxAttempts = c.AnalysisMaxAttempts
	}
	if c.AnalysisBaseBackoff.Duration > 0 {
		config.AnalysisBaseBackoff = c.AnalysisBaseBackoff.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
