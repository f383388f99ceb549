// Package gemini implements the ai.Generator interface on Google's
// Gemini API via the official google.golang.org/genai SDK.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/sakif/krishi-mitra/internal/ai"
)

// Client implements ai.Generator against the Gemini API.
type Client struct {
	client *genai.Client
	config Config
	logger *slog.Logger
}

// compile-time check that *Client implements ai.Generator
var _ ai.Generator = (*Client)(nil)

// New creates a Gemini client.
//
// The provider is optional at startup: if the API key is missing, New
// returns an error and the server boots anyway with the AI endpoints
// degraded to a fixed error response. A misconfigured key must never
// take down signup, login, or chat history.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Client{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// GenerateStream forwards the prompt (and optional inline image) to the
// text model and invokes onChunk for every text fragment as it arrives.
//
// ctx is the request context: a client disconnect cancels the upstream
// stream instead of letting it run to completion on the provider's dime.
func (c *Client) GenerateStream(ctx context.Context, req ai.StreamRequest, onChunk func(text string) error) error {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	for resp, err := range c.client.Models.GenerateContentStream(ctx, c.config.TextModel, contents, generationConfig(req.Config)) {
		if err != nil {
			return fmt.Errorf("gemini: streaming generation: %w", err)
		}
		if text := resp.Text(); text != "" {
			if err := onChunk(text); err != nil {
				return err
			}
		}
	}

	return nil
}

// GenerateTitle asks the text model for a short chat title seeded by the
// first user message, and strips the quoting/whitespace the model tends
// to add despite being told not to.
func (c *Client) GenerateTitle(ctx context.Context, seedMessage string) (string, error) {
	prompt := fmt.Sprintf(
		`Generate a very short (3-5 words) and descriptive title for a chat that starts with: %q. Return ONLY the title text, no quotes or labels.`,
		seedMessage,
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.config.TextModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generating title: %w", err)
	}

	title := strings.TrimSpace(resp.Text())
	title = strings.ReplaceAll(title, `"`, "")
	return title, nil
}

// GenerateImage asks the image model for a picture of the prompt.
//
// An empty result (no inline image part in the response — typically a
// quota miss) is NOT an error: it returns an ImageResult with an empty
// DataURL and the handler responds with a null image URL. Only transport
// and API failures return an error, and even those are softened to a
// null result by the caller (asymmetric by contract with the text
// endpoints).
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*ai.ImageResult, error) {
	fullPrompt := "Generate a realistic image of: " + prompt

	resp, err := c.client.Models.GenerateContent(ctx, c.config.ImageModel, genai.Text(fullPrompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: generating image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				dataURL := fmt.Sprintf("data:%s;base64,%s",
					part.InlineData.MIMEType,
					base64.StdEncoding.EncodeToString(part.InlineData.Data),
				)
				return &ai.ImageResult{DataURL: dataURL}, nil
			}
		}
	}

	c.logger.Info("image generation returned no inline image", slog.String("model", c.config.ImageModel))
	return &ai.ImageResult{}, nil
}

// generationConfig maps the API's opaque config onto the SDK's type.
// A nil input means provider defaults all the way down.
func generationConfig(cfg *ai.GenerationConfig) *genai.GenerateContentConfig {
	if cfg == nil {
		return nil
	}
	return &genai.GenerateContentConfig{
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}
