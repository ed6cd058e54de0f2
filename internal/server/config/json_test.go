package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":    "www.example:9000",
		"database_dsn":          "postgres://example/checks",
		"openai_api_key":        "sk-test",
		"openai_model":          "gpt-4o-mini",
		"analysis_max_attempts": 5,
		"analysis_base_backoff": "2s",
		"request_timeout":       "30s",
	})

	os.Args = []string{"testbin", "-config", pathFlag}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://example/checks", cfg.DatabaseDSN)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 5, cfg.AnalysisMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.AnalysisBaseBackoff)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func Test_parseJson_PartialFileKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "partial.json", map[string]any{
		"endpoint_addr_http": ":9000",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9000", cfg.EndpointAddrHTTP)

	// keys absent from the file must survive
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 3, cfg.AnalysisMaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.AnalysisBaseBackoff)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func Test_parseJson_NoFile_LeavesConfigUntouched(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
}
