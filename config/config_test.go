package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.True(t, cfg.OCREnabled)

	require.Len(t, cfg.LLM.Endpoints, 2)
	assert.Equal(t, "http://127.0.0.1:1234/v1/chat/completions", cfg.LLM.Endpoints[0].URL)
	assert.Equal(t, EndpointChat, cfg.LLM.Endpoints[0].Type)
	assert.Equal(t, "http://127.0.0.1:1234/v1/completions", cfg.LLM.Endpoints[1].URL)
	assert.Equal(t, EndpointCompletion, cfg.LLM.Endpoints[1].Type)
	assert.Equal(t, 5*time.Second, cfg.LLM.ProbeTimeout)
	assert.Equal(t, 180*time.Second, cfg.LLM.CallTimeout)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, 3500, cfg.LLM.PromptBudget)

	assert.Equal(t, 50000, cfg.Tax.StandardDeduction)
	assert.Equal(t, 150000, cfg.Tax.Section80CLimit)
	assert.Equal(t, 25000, cfg.Tax.Section80DLimit)
	assert.Equal(t, 500000, cfg.Tax.RebateLimitOld)
	assert.Equal(t, 12500, cfg.Tax.RebateAmountOld)
	assert.Equal(t, 700000, cfg.Tax.RebateLimitNew)
	assert.Equal(t, 25000, cfg.Tax.RebateAmountNew)
	assert.Equal(t, 0.04, cfg.Tax.CessRate)
	assert.Equal(t, 100, cfg.Tax.TDSTolerance)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TAXAGENT_SERVER_PORT", "9090")
	t.Setenv("TAXAGENT_LLM_BASE_URL", "http://10.0.0.5:8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "http://10.0.0.5:8000/v1/chat/completions", cfg.LLM.Endpoints[0].URL)
}
