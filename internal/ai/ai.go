// Package ai defines the interface to the external generation provider.
//
// The provider is treated as an opaque capability: "given a prompt,
// produce text (streamed), a title, or an image". Handlers depend on
// this interface only; the concrete Gemini client lives in ai/gemini.
// That keeps provider-specific SDK types out of the HTTP layer and lets
// tests substitute a fake.
package ai

import "context"

// InlineImage is an image attached to a prompt, already split out of
// its data-URL form.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// GenerationConfig carries the caller-supplied tuning knobs forwarded to
// the provider. Nil pointers mean "use the provider default". The set is
// intentionally small — the API treats the config as opaque and does not
// validate ranges, the provider does.
type GenerationConfig struct {
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            *float32 `json:"topP,omitempty"`
	TopK            *float32 `json:"topK,omitempty"`
	MaxOutputTokens int32    `json:"maxOutputTokens,omitempty"`
}

// StreamRequest is one streamed-generation call.
type StreamRequest struct {
	Prompt string
	Image  *InlineImage
	Config *GenerationConfig
}

// ImageResult is the outcome of an image generation. DataURL is a
// "data:<mime>;base64,<payload>" string, or empty when the provider
// returned no inline image — which callers must treat as a soft miss,
// not a failure.
type ImageResult struct {
	DataURL string
}

// Generator is the capability interface for the external provider.
//
// GenerateStream invokes onChunk for each text fragment as it arrives;
// a non-nil onChunk error aborts the stream. The ctx is propagated to
// the provider, so cancelling it (e.g. the HTTP client disconnecting)
// aborts the upstream call rather than leaking it.
type Generator interface {
	GenerateStream(ctx context.Context, req StreamRequest, onChunk func(text string) error) error
	GenerateTitle(ctx context.Context, seedMessage string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}
