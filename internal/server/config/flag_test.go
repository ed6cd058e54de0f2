package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesConfig(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9191",
		"-d", "postgres://example/checks",
		"-k", "sk-flag",
		"-m", "gpt-4o-mini",
		"-r", "4",
		"-b", "2",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9191", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://example/checks", cfg.DatabaseDSN)
	assert.Equal(t, "sk-flag", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 4, cfg.AnalysisMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.AnalysisBaseBackoff)
}

func Test_parseFlags_NoFlags_KeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.Equal(t, 3, cfg.AnalysisMaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.AnalysisBaseBackoff)
}
