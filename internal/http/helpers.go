package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// failures carry the full field map at 422, store rejections surface as
// 500 with a message naming the failed action.
func writeError(w http.ResponseWriter, action string, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "failed to " + action + ": invalid item",
			Fields: verr.Fields,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "failed to " + action,
	})
}

// parseDate accepts a calendar date (2006-01-02) or a full RFC 3339
// timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parseFilters reads the optional filter query parameters. Absent
// parameters mean "no constraint".
func parseFilters(r *http.Request) core.Filters {
	q := r.URL.Query()
	filters := core.Filters{
		Type:     core.ItemType(strings.TrimSpace(q.Get("type"))),
		Category: core.Category(strings.TrimSpace(q.Get("category"))),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		if t, err := parseDate(v); err == nil {
			filters.StartDate = t
		}
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		if t, err := parseDate(v); err == nil {
			filters.EndDate = t
		}
	}
	return filters
}
