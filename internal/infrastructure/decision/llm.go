package decision

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"craft_market/internal/domain/entity"
	"craft_market/pkg/httpx"
	"craft_market/pkg/logx"
)

const systemPrompt = "You are a trader in a daily potion market. " +
	"Reply with a single JSON object and nothing else, shaped as " +
	`{"buys":[{"resource":"H01","qty":1}],"crafts":[{"product":"P01","qty":1}],"offers":[{"product":"P01","price":10,"qty":1}]}. ` +
	"Quantities are non-negative integers, offer prices are positive integers. " +
	"You may only buy listed resources and craft/offer listed products."

// LLMConfig selects the model backend. The API is OpenAI-compatible chat
// completions with bearer auth.
type LLMConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// Microcents per token, for cost accounting in DecisionUsage.
	PromptCostMicro     int64
	CompletionCostMicro int64
}

// LLM asks a chat-completion model for the round's action.
type LLM struct {
	cfg    LLMConfig
	client *http.Client
}

type staticAuthenticator struct {
	token string
}

func (a staticAuthenticator) Authenticate(context.Context) error { return nil }
func (a staticAuthenticator) BearerToken() string                { return a.token }

func NewLLM(cfg LLMConfig) *LLM {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}

	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(2048),
		),
		staticAuthenticator{token: cfg.APIKey},
	)

	return &LLM{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

func (l *LLM) Kind() string { return KindLLM }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
}

func (l *LLM) Decide(ctx context.Context, req Request) (Response, error) {
	situation, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("json.Marshal: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:     l.cfg.Model,
		MaxTokens: l.cfg.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(situation)},
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("json.Marshal: %w", err)
	}

	url := strings.TrimSuffix(l.cfg.BaseURL, "/") + "/chat/completions"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("model API status %d: %s", resp.StatusCode, respBody)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return Response{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if len(chat.Choices) == 0 {
		return Response{}, fmt.Errorf("model returned no choices")
	}

	usage := entity.DecisionUsage{
		InputTokens:  chat.Usage.PromptTokens,
		OutputTokens: chat.Usage.CompletionTokens,
		CostMicrocents: chat.Usage.PromptTokens*l.cfg.PromptCostMicro +
			chat.Usage.CompletionTokens*l.cfg.CompletionCostMicro,
	}

	return Response{
		Raw:   []byte(stripFences(chat.Choices[0].Message.Content)),
		Usage: usage,
	}, nil
}

// stripFences tolerates models wrapping JSON into a markdown code block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}

	return strings.TrimSpace(s)
}
