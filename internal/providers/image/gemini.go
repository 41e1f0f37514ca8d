package image

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"fitvision/internal/fault"
	"fitvision/internal/providers/genai"
)

// AspectRatio is the explicit hint passed to the image model, mirroring the
// --ar directive stripped from the text form.
const AspectRatio = "16:9"

// DefaultModel is the image model used for preview rendering.
const DefaultModel = "gemini-2.5-flash-image"

// aspectDirective matches the Midjourney-style aspect token the composer
// appends; it means nothing to the image model and is stripped before send.
var aspectDirective = regexp.MustCompile(`--ar \d+:\d+`)

// safetySettings biases the service toward allowing fitness photography:
// only high-severity content is blocked, because the strictest defaults
// over-block legitimate sweat-and-skin imagery.
var safetySettings = []genai.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
}

// GeminiOptions configures a Gemini-backed renderer.
type GeminiOptions struct {
	Client *genai.Client
	Model  string
	Logger zerolog.Logger
}

// Gemini renders prompts with the Gemini image model and returns the result
// as a data URI.
type Gemini struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGemini constructs the renderer.
func NewGemini(opts GeminiOptions) (*Gemini, error) {
	if opts.Client == nil {
		return nil, errors.New("image: genai client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: opts.Client, model: model, logger: opts.Logger}, nil
}

// CleanPrompt strips presentation-only directives (the aspect-ratio token and
// markdown emphasis markers) from the text actually sent to the model. The
// stored prompt is never mutated.
func CleanPrompt(prompt string) string {
	cleaned := aspectDirective.ReplaceAllString(prompt, "")
	cleaned = strings.ReplaceAll(cleaned, "**", "")
	return strings.TrimSpace(cleaned)
}

// Render sends the cleaned prompt with an explicit 16:9 hint and moderate
// safety thresholds. Safety blocks surface as CONTENT_BLOCKED, image-free
// responses as NO_IMAGE_RETURNED.
func (g *Gemini) Render(ctx context.Context, prompt string) (string, error) {
	req := genai.GenerateContentRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: CleanPrompt(prompt)}},
		}},
		GenerationConfig: &genai.GenerationConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: AspectRatio},
		},
		SafetySettings: safetySettings,
	}

	resp, err := g.client.GenerateContent(ctx, g.model, req)
	if err != nil {
		switch fault.CodeOf(err) {
		case fault.CodeRateLimited, fault.CodeConfig:
			return "", err
		}
		return "", fault.Wrap(fault.CodeNoImage, upstreamMessage(err), err)
	}

	if reason := blockReason(resp); reason != "" {
		return "", fault.New(fault.CodeContentBlocked,
			fmt.Sprintf("Image blocked by the safety filter (%s), please modify the prompt", reason))
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mime := part.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mime, part.InlineData.Data), nil
			}
		}
	}

	return "", fault.New(fault.CodeNoImage, "Image data not found in response")
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return resp.PromptFeedback.BlockReason
	}
	for _, cand := range resp.Candidates {
		switch cand.FinishReason {
		case "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT":
			return cand.FinishReason
		}
	}
	return ""
}

func upstreamMessage(err error) string {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Image Generation Failed"
}

var _ Renderer = (*Gemini)(nil)
