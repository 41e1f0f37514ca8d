// Package image renders composed prompts into preview images through the
// Gemini image model.
package image

import "context"

// Renderer turns a composed prompt into an addressable image reference
// (a data URI in the Gemini implementation).
type Renderer interface {
	Render(ctx context.Context, prompt string) (string, error)
}
