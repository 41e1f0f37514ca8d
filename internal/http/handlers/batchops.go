package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitvision/internal/batch"
	"fitvision/internal/export"
	"fitvision/internal/style"
)

type batchSubmitRequest struct {
	CourseNames string `json:"courseNames"`
}

type editPromptRequest struct {
	Prompt string `json:"prompt"`
}

// BatchSubmit starts a new batch. Blank input is a silent no-op (204); a
// submission while another batch is generating is rejected (409).
func (a *App) BatchSubmit(w http.ResponseWriter, r *http.Request) {
	var req batchSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(batch.SplitCourseNames(req.CourseNames)) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !a.Orchestrator.Submit(req.CourseNames) {
		a.error(w, http.StatusConflict, "batch_in_flight", "a batch is already generating")
		return
	}
	a.json(w, http.StatusAccepted, a.Orchestrator.Snapshot())
}

// BatchSnapshot returns the current full state.
func (a *App) BatchSnapshot(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Orchestrator.Snapshot())
}

// BatchConfig swaps the style selection and recomputes successful prompts.
func (a *App) BatchConfig(w http.ResponseWriter, r *http.Request) {
	var cfg style.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Orchestrator.UpdateConfig(cfg); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, a.Orchestrator.Snapshot())
}

// StyleOptions serves the selector catalog and the default selection.
func (a *App) StyleOptions(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"options":  style.AllOptions(),
		"defaults": style.DefaultConfig(),
	})
}

// ItemPrompt overwrites one item's prompt verbatim.
func (a *App) ItemPrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req editPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Orchestrator.EditPrompt(id, req.Prompt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	item, err := a.Orchestrator.Item(id)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	a.json(w, http.StatusOK, item)
}

// ItemImage drives one item's image render to completion and returns the
// resulting item state. Failures still update the item before surfacing.
func (a *App) ItemImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := a.Orchestrator.RenderImage(r.Context(), id)
	switch {
	case err == nil:
		item, itemErr := a.Orchestrator.Item(id)
		if itemErr != nil {
			a.error(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		a.json(w, http.StatusOK, item)
	case errors.Is(err, batch.ErrItemNotFound):
		a.error(w, http.StatusNotFound, "not_found", "item not found")
	case errors.Is(err, batch.ErrNoPrompt):
		a.error(w, http.StatusConflict, "no_prompt", "item has no prompt yet")
	default:
		a.aiError(w, err)
	}
}

// ItemImageDownload serves a rendered image as a file attachment named from
// the course title.
func (a *App) ItemImageDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := a.Orchestrator.Item(id)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	if item.ImageStatus != batch.ImageSuccess || item.ImageURL == "" {
		a.error(w, http.StatusNotFound, "not_found", "item has no rendered image")
		return
	}
	mime, data, err := export.DecodeDataURI(item.ImageURL)
	if err != nil {
		a.Logger.Error().Err(err).Str("item", id).Msg("stored image is not a data URI")
		a.error(w, http.StatusInternalServerError, "internal", "stored image is unreadable")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.ImageFilename(item.Name)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// BatchExportMarkdown serves the two-column prompt table for clipboard use.
func (a *App) BatchExportMarkdown(w http.ResponseWriter, r *http.Request) {
	snap := a.Orchestrator.Snapshot()
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.MarkdownTable(snap.Items)))
}
