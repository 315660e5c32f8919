package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Generator is the structured-generation contract: given a system/user prompt
// pair and a sampling temperature, return a parsed JSON object. Callers are
// responsible for validating the object's shape against their expected schema.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (json.RawMessage, error)
}

// GPTClient calls an OpenAI-compatible chat completions endpoint with JSON
// response formatting. It performs no retry and no output repair; a failed or
// unparseable response surfaces as domain.ErrGeneration and the caller decides
// whether to re-invoke the step.
type GPTClient struct {
	client   *resty.Client
	model    string
	endpoint string
}

// GPTConfig holds configuration for the structured-generation client.
type GPTConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// NewGPTClient creates a new structured-generation client.
// Parameters:
//   - cfg: model, API key, and base URL.
// Returns:
//   - *GPTClient: initialized client wrapper.
func NewGPTClient(cfg *GPTConfig) *GPTClient {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(120 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &GPTClient{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// OpenAI-compatible chat completion request/response structures
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends a system/user prompt pair and returns the raw JSON object the
// model produced.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - systemPrompt: role and output-shape instructions.
//   - userPrompt: step-specific content.
//   - temperature: sampling temperature for this step.
// Returns:
//   - json.RawMessage: the model's JSON object, verified to parse.
//   - error: wraps domain.ErrGeneration on any failure.
func (c *GPTClient) Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (json.RawMessage, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return nil, fmt.Errorf("%w: chat completions call failed: %v", domain.ErrGeneration, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGeneration, errorMsg)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGeneration, resp.Error.Message)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no content in response (status: %d)", domain.ErrGeneration, httpResp.StatusCode())
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", domain.ErrGeneration)
	}

	return json.RawMessage(content), nil
}
