package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"fitvision/internal/fault"
	"fitvision/internal/providers/genai"
)

// DefaultModel is the text model used for action inference.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are a visual director for fitness photography.
Your task is to convert a Fitness Course Name into a specific, single physical action description in SIMPLIFIED CHINESE (简体中文).

Rules:
1. Output ONLY the action phrase in Chinese (e.g., "做高位平板支撑", "原地冲刺跑", "双手举哑铃").
2. Do not add introductory text.
3. Keep it concise (under 15 chars).
4. If the course is abstract (e.g., "Mindset"), invent a visual (e.g., "闭眼冥想").`

// GeminiOptions configures a Gemini-backed resolver.
type GeminiOptions struct {
	Client *genai.Client
	Model  string
	Logger zerolog.Logger
}

// Gemini resolves actions through the Gemini text model with a JSON response
// schema constraining the reply to {"action": string}.
type Gemini struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

type actionPayload struct {
	Action string `json:"action"`
}

// NewGemini constructs the resolver.
func NewGemini(opts GeminiOptions) (*Gemini, error) {
	if opts.Client == nil {
		return nil, errors.New("action: genai client is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: opts.Client, model: model, logger: opts.Logger}, nil
}

// Resolve asks the model for the action phrase. Rate-limit and credential
// failures keep their classification; everything else surfaces as
// RESOLUTION_FAILED with the upstream message. An empty or unparseable reply
// yields PlaceholderAction.
func (g *Gemini) Resolve(ctx context.Context, courseName string) (string, error) {
	req := genai.GenerateContentRequest{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{{Text: fmt.Sprintf("Course Title: %q", courseName)}},
		}},
		SystemInstruction: &genai.Content{
			Parts: []genai.Part{{Text: systemInstruction}},
		},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: "OBJECT",
				Properties: map[string]*genai.Schema{
					"action": {
						Type:        "STRING",
						Description: "The specific physical action description in Simplified Chinese",
					},
				},
			},
		},
	}

	resp, err := g.client.GenerateContent(ctx, g.model, req)
	if err != nil {
		switch fault.CodeOf(err) {
		case fault.CodeRateLimited, fault.CodeConfig:
			return "", err
		}
		return "", fault.Wrap(fault.CodeResolutionFailed, upstreamMessage(err), err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		g.logger.Debug().Str("course", courseName).Msg("action: empty model reply, using placeholder")
		return PlaceholderAction, nil
	}

	parsed, err := parsePayload(text)
	if err != nil || strings.TrimSpace(parsed.Action) == "" {
		g.logger.Debug().Str("course", courseName).Msg("action: unparseable model reply, using placeholder")
		return PlaceholderAction, nil
	}
	return strings.TrimSpace(parsed.Action), nil
}

func upstreamMessage(err error) string {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Failed to fetch action"
}

func parsePayload(raw string) (actionPayload, error) {
	var zero actionPayload
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded actionPayload
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}

func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

var _ Resolver = (*Gemini)(nil)
