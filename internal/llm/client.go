package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator is the external generation boundary: one call in, one string
// out. Implementations must be treated as slow, fallible and
// non-deterministic; the core never assumes idempotence of this call.
type Generator interface {
	// Generate produces text from system and user instructions.
	Generate(ctx context.Context, systemInstructions, userInstructions string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, system, user string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// Client is an abstraction over LLM providers
type Client interface {
	Generator
	// GenerateWithTier generates text using the specified model tier
	GenerateWithTier(ctx context.Context, systemInstructions, userInstructions string, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &GenerationUnavailableError{
			Message: "failed to create Gemini client",
			Cause:   err,
		}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate produces text at the standard tier.
func (c *GeminiClient) Generate(ctx context.Context, systemInstructions, userInstructions string) (string, error) {
	return c.GenerateWithTier(ctx, systemInstructions, userInstructions, TierStandard)
}

// GenerateWithTier generates text using the specified model tier
func (c *GeminiClient) GenerateWithTier(ctx context.Context, systemInstructions, userInstructions string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	if systemInstructions != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemInstructions)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userInstructions))
	if err != nil {
		return "", &GenerationUnavailableError{
			Message: fmt.Sprintf("generate call failed for model %s", modelName),
			Cause:   err,
		}
	}

	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &GenerationUnavailableError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &GenerationUnavailableError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &GenerationUnavailableError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
