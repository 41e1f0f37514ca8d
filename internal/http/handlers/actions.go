package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type generateActionRequest struct {
	CourseName string `json:"courseName"`
}

type generateActionResponse struct {
	Action string `json:"action"`
}

// GenerateAction is the stateless boundary endpoint: one course name in, one
// inferred Chinese action phrase out.
func (a *App) GenerateAction(w http.ResponseWriter, r *http.Request) {
	var req generateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.CourseName = strings.TrimSpace(req.CourseName)
	if req.CourseName == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "courseName is required")
		return
	}

	act, err := a.Resolver.Resolve(r.Context(), req.CourseName)
	if err != nil {
		a.Logger.Warn().Err(err).Str("course", req.CourseName).Msg("action resolution failed")
		a.aiError(w, err)
		return
	}
	a.json(w, http.StatusOK, generateActionResponse{Action: act})
}
