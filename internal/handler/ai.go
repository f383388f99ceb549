package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/krishi-mitra/internal/ai"
	"github.com/sakif/krishi-mitra/internal/apperror"
)

// AIHandler proxies generation requests to the configured AI backend.
// The generator may be nil when no API key was provided at startup; in
// that case every endpoint reports the assistant as unavailable.
type AIHandler struct {
	generator ai.Generator
	logger    *slog.Logger
}

// NewAIHandler creates an AIHandler. A nil generator is allowed and
// puts the handler in degraded mode.
func NewAIHandler(generator ai.Generator, logger *slog.Logger) *AIHandler {
	return &AIHandler{generator: generator, logger: logger}
}

type streamRequest struct {
	Prompt      string               `json:"prompt"`
	ImageBase64 string               `json:"imageBase64,omitempty"`
	Config      *ai.GenerationConfig `json:"config,omitempty"`
}

type titleRequest struct {
	Prompt string `json:"prompt"`
}

type titleResponse struct {
	Title string `json:"title"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	ImageURL *string `json:"imageUrl"`
}

// HandleGenerateStream streams text chunks for a prompt as they arrive
// from the model.
//
// HTTP: POST /ai/generate-stream
// Chunks are written as plain text and flushed immediately. Once the
// first byte has gone out the status is committed; a mid-stream error
// truncates the body rather than retracting it.
func (h *AIHandler) HandleGenerateStream(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeError(w, errAIUnavailable())
		return
	}

	var req streamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" && req.ImageBase64 == "" {
		writeError(w, apperror.ValidationFailed("prompt", "Prompt is required."))
		return
	}

	image, err := parseDataURL(req.ImageBase64)
	if err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errAIUnavailable())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	started := false
	streamErr := h.generator.GenerateStream(r.Context(), ai.StreamRequest{
		Prompt: req.Prompt,
		Image:  image,
		Config: req.Config,
	}, func(chunk string) error {
		if !started {
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if streamErr != nil {
		if !started {
			h.logger.Error("stream failed before first chunk", "error", streamErr)
			writeError(w, streamErr)
			return
		}
		// Headers are gone; the truncated body is all we can signal.
		h.logger.Error("stream aborted mid-response", "error", streamErr)
		return
	}

	if !started {
		w.WriteHeader(http.StatusOK)
	}
}

// HandleGenerateTitle produces a short title for a conversation seed.
//
// HTTP: POST /ai/generate-title
func (h *AIHandler) HandleGenerateTitle(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeError(w, errAIUnavailable())
		return
	}

	var req titleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, apperror.ValidationFailed("prompt", "Prompt is required."))
		return
	}

	title, err := h.generator.GenerateTitle(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, titleResponse{Title: title})
}

// HandleGenerateImage asks the model for an image and returns it as a
// data URL.
//
// HTTP: POST /ai/generate-image
// Image generation is best-effort: a provider failure or a response
// with no image yields {"imageUrl": null} with HTTP 200, so the client
// can fall back to a text-only reply.
func (h *AIHandler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeError(w, errAIUnavailable())
		return
	}

	var req imageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, apperror.ValidationFailed("prompt", "Prompt is required."))
		return
	}

	result, err := h.generator.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Warn("image generation failed", "error", err)
		writeJSON(w, http.StatusOK, imageResponse{ImageURL: nil})
		return
	}
	if result == nil || result.DataURL == "" {
		writeJSON(w, http.StatusOK, imageResponse{ImageURL: nil})
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{ImageURL: &result.DataURL})
}

// parseDataURL decodes a "data:<mime>;base64,<payload>" string into an
// inline image. An empty input yields nil with no error.
func parseDataURL(dataURL string) (*ai.InlineImage, error) {
	if dataURL == "" {
		return nil, nil
	}

	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, apperror.ValidationFailed("imageBase64", "Expected a base64 data URL.")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, apperror.ValidationFailed("imageBase64", "Expected a base64 data URL.")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, apperror.ValidationFailed("imageBase64", "Expected a base64 data URL.")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperror.ValidationFailed("imageBase64", "Invalid base64 image payload.")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return &ai.InlineImage{MIMEType: mimeType, Data: data}, nil
}

func errAIUnavailable() error {
	return apperror.Unavailable("AI assistant is not configured on this server.")
}
