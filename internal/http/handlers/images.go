package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

type generateImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// GenerateImage is the stateless boundary endpoint: one composed prompt in,
// one rendered image (as a data URI) out.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}

	url, err := a.Renderer.Render(r.Context(), req.Prompt)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("image generation failed")
		a.aiError(w, err)
		return
	}
	a.json(w, http.StatusOK, generateImageResponse{ImageURL: url})
}
