package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/pptxdom/internal/deck"
	"github.com/dgallion1/pptxdom/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

func (s *Server) handleSubmitEdits(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	var edits []deck.Edit
	if err := json.Unmarshal([]byte(r.FormValue("edits")), &edits); err != nil {
		jsonError(w, "edits must be a JSON array: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(edits) == 0 {
		jsonError(w, "at least one edit is required", http.StatusBadRequest)
		return
	}
	for i, e := range edits {
		if e.Op != deck.OpSetNodeText && e.Op != deck.OpRelabelCategories {
			jsonError(w, fmt.Sprintf("edit %d: unknown op %q", i, e.Op), http.StatusBadRequest)
			return
		}
		if e.Slide < 1 {
			jsonError(w, fmt.Sprintf("edit %d: slide must be 1 or greater", i), http.StatusBadRequest)
			return
		}
	}

	job := pipeline.NewJob(up.filename, up.data, edits)
	if err := s.orchestrator.Submit(job); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), code)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     job.ID,
		"status":     pipeline.StatusQueued,
		"poll_url":   fmt.Sprintf("/api/edits/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/edits/%s/result", job.ID),
	})
}

func (s *Server) handleEditStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleEditResult streams the edited deck once the job has completed or
// partially completed.
func (s *Server) handleEditResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if !snap.Status.Done() {
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), http.StatusConflict)
		return
	}
	result := job.Result()
	if result == nil {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "job failed",
			"errors": snap.Progress.Errors,
		})
		return
	}

	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Filename))
	w.Write(result)
}
