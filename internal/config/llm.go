package config

import "time"

type LLM struct {
	BaseURL   string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	APIKey    string        `env:"LLM_API_KEY" json:"-"`
	Model     string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	MaxTokens int           `env:"LLM_MAX_TOKENS" envDefault:"512"`
	Timeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"45s"`

	PromptCostMicrocents     int64 `env:"LLM_PROMPT_COST_MICROCENTS" envDefault:"15"`
	CompletionCostMicrocents int64 `env:"LLM_COMPLETION_COST_MICROCENTS" envDefault:"60"`
}
