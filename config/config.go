package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Endpoint kinds for the text-completion service.
const (
	EndpointChat       = "chat"
	EndpointCompletion = "completion"
)

// LLMEndpoint describes one candidate text-completion endpoint.
type LLMEndpoint struct {
	Name string
	URL  string
	Type string // "chat" or "completion"
}

// LLMConfig holds the external text-completion service settings.
type LLMConfig struct {
	Endpoints    []LLMEndpoint
	Model        string
	ProbeTimeout time.Duration
	CallTimeout  time.Duration
	MaxTokens    int
	Temperature  float64
	PromptBudget int // max characters of document text sent per request
}

// TaxParams holds the statutory amounts for one assessment year.
// These change annually, so they live in configuration rather than code.
type TaxParams struct {
	AssessmentYear    string
	StandardDeduction int
	Section80CLimit   int
	Section80DLimit   int
	RebateLimitOld    int
	RebateAmountOld   int
	RebateLimitNew    int
	RebateAmountNew   int
	CessRate          float64
	TDSTolerance      int
}

// Config holds all configuration for the tax agent service.
type Config struct {
	ServerPort        string
	MaxFileSize       int64
	TesseractDataPath string
	OCREnabled        bool
	LLM               LLMConfig
	Tax               TaxParams
}

// Load reads configuration from environment variables (TAXAGENT_ prefix)
// with defaults matching AY 2024-25.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TAXAGENT")
	v.AutomaticEnv()

	v.SetDefault("server_port", "8080")
	v.SetDefault("max_file_size", int64(10*1024*1024))
	v.SetDefault("tessdata_prefix", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("ocr_enabled", true)

	v.SetDefault("llm_base_url", "http://127.0.0.1:1234")
	v.SetDefault("llm_model", "zephyr-7b-beta")
	v.SetDefault("llm_probe_timeout", "5s")
	v.SetDefault("llm_call_timeout", "180s")
	v.SetDefault("llm_max_tokens", 1024)
	v.SetDefault("llm_temperature", 0.1)
	v.SetDefault("llm_prompt_budget", 3500)

	v.SetDefault("assessment_year", "2025")
	v.SetDefault("standard_deduction", 50000)
	v.SetDefault("section_80c_limit", 150000)
	v.SetDefault("section_80d_limit", 25000)
	v.SetDefault("rebate_87a_limit_old", 500000)
	v.SetDefault("rebate_87a_amount_old", 12500)
	v.SetDefault("rebate_87a_limit_new", 700000)
	v.SetDefault("rebate_87a_amount_new", 25000)
	v.SetDefault("cess_rate", 0.04)
	v.SetDefault("tds_tolerance", 100)

	base := v.GetString("llm_base_url")
	cfg := &Config{
		ServerPort:        v.GetString("server_port"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		TesseractDataPath: v.GetString("tessdata_prefix"),
		OCREnabled:        v.GetBool("ocr_enabled"),
		LLM: LLMConfig{
			Endpoints: []LLMEndpoint{
				{Name: "LM Studio Chat", URL: base + "/v1/chat/completions", Type: EndpointChat},
				{Name: "LM Studio", URL: base + "/v1/completions", Type: EndpointCompletion},
			},
			Model:        v.GetString("llm_model"),
			ProbeTimeout: v.GetDuration("llm_probe_timeout"),
			CallTimeout:  v.GetDuration("llm_call_timeout"),
			MaxTokens:    v.GetInt("llm_max_tokens"),
			Temperature:  v.GetFloat64("llm_temperature"),
			PromptBudget: v.GetInt("llm_prompt_budget"),
		},
		Tax: TaxParams{
			AssessmentYear:    v.GetString("assessment_year"),
			StandardDeduction: v.GetInt("standard_deduction"),
			Section80CLimit:   v.GetInt("section_80c_limit"),
			Section80DLimit:   v.GetInt("section_80d_limit"),
			RebateLimitOld:    v.GetInt("rebate_87a_limit_old"),
			RebateAmountOld:   v.GetInt("rebate_87a_amount_old"),
			RebateLimitNew:    v.GetInt("rebate_87a_limit_new"),
			RebateAmountNew:   v.GetInt("rebate_87a_amount_new"),
			CessRate:          v.GetFloat64("cess_rate"),
			TDSTolerance:      v.GetInt("tds_tolerance"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("server port cannot be empty")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("max file size must be positive")
	}
	if len(c.LLM.Endpoints) == 0 {
		return errors.New("at least one LLM endpoint is required")
	}
	for _, ep := range c.LLM.Endpoints {
		if ep.Type != EndpointChat && ep.Type != EndpointCompletion {
			return fmt.Errorf("endpoint %s: unknown type %q", ep.Name, ep.Type)
		}
	}
	if c.LLM.PromptBudget <= 0 {
		return errors.New("LLM prompt budget must be positive")
	}
	if c.Tax.CessRate < 0 || c.Tax.CessRate > 1 {
		return errors.New("cess rate must be a fraction between 0 and 1")
	}
	return nil
}
