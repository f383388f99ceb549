package gemini

// Config holds the configuration for the Gemini client.
type Config struct {
	// APIKey authenticates against the Gemini API. Empty means the
	// provider is unavailable; the server still starts (see New).
	APIKey string
	// TextModel serves streamed generation and title generation.
	TextModel string
	// ImageModel serves image generation.
	ImageModel string
}

// DefaultConfig provides the model names the service ships with.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		TextModel:  "gemini-3-flash-preview",
		ImageModel: "gemini-2.5-flash-image",
	}
}
