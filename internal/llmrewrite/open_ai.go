package llmrewrite

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jcant0n/improvecomments/internal/q/health"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAICompleter sends one chat-completions request per Complete call. The
// client is configured with zero retries: a failed span call surfaces
// immediately and the owning file is skipped.
type openAICompleter struct {
	model  string
	client *openai.Client
	health.Ctx
}

// NewOpenAICompleter returns a Completer backed by the OpenAI chat-completions
// API using the key in APIKeyEnv. An error is returned when the key is absent
// (the remote client cannot be constructed without it).
func NewOpenAICompleter(model string, ctx health.Ctx) (Completer, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, ctx.LogNewErr("could not construct client; no API key", "env", APIKeyEnv)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &openAICompleter{
		model:  model,
		client: &client,
		Ctx:    ctx,
	}, nil
}

// Complete sends systemMessage and userMessage as a single-turn conversation
// and returns the sole completion choice's text verbatim.
func (c *openAICompleter) Complete(systemMessage string, userMessage string) (string, error) {
	request := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(userMessage),
		},
	}

	c.Debug("completion.request", "model", c.model, "bytes", len(userMessage), "toks", CountTokens(userMessage))

	ctx := context.Background()
	var httpResp *http.Response
	resp, err := c.client.Chat.Completions.New(ctx, request, option.WithResponseInto(&httpResp))
	if err != nil {
		statusCode := 0
		message := err.Error()
		if apiErr, ok := err.(*openai.Error); ok {
			statusCode = apiErr.StatusCode
			message = apiErr.Message
		} else if httpResp != nil {
			statusCode = httpResp.StatusCode
		}
		return "", health.Wrap("chat completion request failed", err, "status", statusCode, "message", message)
	}

	if resp == nil {
		return "", health.NewErr("chat completion response is nil")
	}
	if len(resp.Choices) != 1 {
		return "", health.NewErr("unexpected choices length", "choices", len(resp.Choices))
	}

	choice := resp.Choices[0]
	if role := string(choice.Message.Role); role != "assistant" {
		return "", health.NewErr("unexpected role of response message", "role", role)
	}

	text := choice.Message.Content
	if text == "" {
		text = choice.Message.Refusal
	}

	limits := rateLimitsFromHeaders(httpResp)
	c.Debug("completion.response",
		"requestID", resp.ID,
		"model", resp.Model,
		"stopReason", choice.FinishReason,
		"tokens", resp.Usage.TotalTokens,
		"in", resp.Usage.PromptTokens,
		"out", resp.Usage.CompletionTokens,
		"tokensRemaining", limits.TokensRemaining,
		"requestsRemaining", limits.RequestsRemaining,
	)

	return text, nil
}

// rateLimits mirrors the provider's x-ratelimit-* response headers. Values
// default to zero when headers are absent or unparseable.
type rateLimits struct {
	TokensLimit       int
	RequestsLimit     int
	TokensRemaining   int
	RequestsRemaining int
	TokensResetsAt    time.Time
	RequestsResetsAt  time.Time
}

func rateLimitsFromHeaders(httpResp *http.Response) rateLimits {
	var limits rateLimits
	if httpResp == nil {
		return limits
	}
	headers := httpResp.Header

	limits.TokensLimit = parseRateLimitInt(headers.Get("x-ratelimit-limit-tokens"))
	limits.RequestsLimit = parseRateLimitInt(headers.Get("x-ratelimit-limit-requests"))
	limits.TokensRemaining = parseRateLimitInt(headers.Get("x-ratelimit-remaining-tokens"))
	limits.RequestsRemaining = parseRateLimitInt(headers.Get("x-ratelimit-remaining-requests"))
	limits.TokensResetsAt = parseRateLimitReset(headers.Get("x-ratelimit-reset-tokens"))
	limits.RequestsResetsAt = parseRateLimitReset(headers.Get("x-ratelimit-reset-requests"))
	return limits
}

func parseRateLimitInt(val string) int {
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}

func parseRateLimitReset(val string) time.Time {
	if val == "" {
		return time.Time{}
	}
	if d, err := time.ParseDuration(val); err == nil {
		return time.Now().Add(d)
	}
	// Header present but not a valid duration.
	return time.Time{}
}
