package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/log"
)

// itemRequest is the wire shape for creates. Dates arrive as strings so
// callers can send plain calendar dates.
type itemRequest struct {
	Name        string          `json:"name"`
	Amount      float64         `json:"amount"`
	Type        core.ItemType   `json:"type"`
	Category    core.Category   `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Recurrence  core.Recurrence `json:"recurrence"`
}

// patchRequest is the wire shape for partial updates; absent fields are
// left untouched.
type patchRequest struct {
	Name        *string          `json:"name"`
	Amount      *float64         `json:"amount"`
	Category    *core.Category   `json:"category"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Tags        *[]string        `json:"tags"`
	Recurrence  *core.Recurrence `json:"recurrence"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	draft := core.Draft{
		Name:        req.Name,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
		Recurrence:  req.Recurrence,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "failed to create item: invalid item",
				Fields: map[string]string{"date": "date must be a valid calendar date"},
			})
			return
		}
		draft.Date = date
	}

	item, err := s.svc.Create(r.Context(), draft)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to create item",
			"name", req.Name, "error", err)
		writeError(w, "create item", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.GetAll(r.Context(), parseFilters(r))
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list items", "error", err)
		writeError(w, "list items", err)
		return
	}
	if items == nil {
		items = []core.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := s.svc.GetByID(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to fetch item", "id", id, "error", err)
		writeError(w, "fetch item", err)
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	patch := core.Patch{
		Name:        req.Name,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
		Recurrence:  req.Recurrence,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "failed to update item: invalid item",
				Fields: map[string]string{"date": "date must be a valid calendar date"},
			})
			return
		}
		patch.Date = &date
	}

	if err := s.svc.Update(r.Context(), id, patch); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to update item", "id", id, "error", err)
		writeError(w, "update item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.svc.Delete(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete item", "id", id, "error", err)
		writeError(w, "delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context(), parseFilters(r), s.statsMonths)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to compute stats", "error", err)
		writeError(w, "compute stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.GetAll(r.Context(), parseFilters(r))
	if err != nil {
		writeError(w, "export items", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "fintrack-"+time.Now().Format("2006-01-02")+".csv"))

	if err := export.WriteCSV(w, items); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to write CSV export", "error", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.GetAll(r.Context(), parseFilters(r))
	if err != nil {
		writeError(w, "export items", err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "fintrack-"+time.Now().Format("2006-01-02")+".json"))

	if err := export.WriteJSON(w, items); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to write JSON export", "error", err)
	}
}
