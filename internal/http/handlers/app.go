// Package handlers exposes the prompt service over JSON HTTP endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"fitvision/internal/batch"
	"fitvision/internal/fault"
	"fitvision/internal/providers/action"
	"fitvision/internal/providers/image"
)

// App is the handler container wired in main.
type App struct {
	Logger         zerolog.Logger
	Orchestrator   *batch.Orchestrator
	Resolver       action.Resolver
	Renderer       image.Renderer
	AllowedOrigins []string
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorResponse{Error: message, Code: code})
}

// aiError maps a classified boundary failure onto the error envelope.
func (a *App) aiError(w http.ResponseWriter, err error) {
	a.error(w, fault.HTTPStatus(err), string(fault.CodeOf(err)), fault.MessageOf(err))
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
