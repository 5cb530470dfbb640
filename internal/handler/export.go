package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"project_id", "project_label", "client_id",
	"record_id", "date", "start_time", "end_time",
	"description", "lunch_minutes", "hours",
}

// GetExport handles GET /work/export.
// It returns one row per non-deleted record the caller owns.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	rows, err := s.work.Export(r.Context(), sess)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, exportJSON(rows))
}

// exportRowJSON is the JSON shape of one export row.
type exportRowJSON struct {
	ProjectID    string     `json:"projectId"`
	ProjectLabel string     `json:"projectLabel,omitempty"`
	ClientID     string     `json:"clientId,omitempty"`
	RecordID     string     `json:"recordId"`
	Date         string     `json:"date"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Description  string     `json:"description,omitempty"`
	LunchMinutes int        `json:"lunchMinutes"`
	Hours        string     `json:"hours"`
}

// exportJSON converts domain rows to the JSON response shape.
func exportJSON(rows []domain.ExportRow) []exportRowJSON {
	out := make([]exportRowJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRowJSON{
			ProjectID:    r.ProjectID,
			ProjectLabel: r.ProjectLabel,
			ClientID:     r.ClientID,
			RecordID:     r.RecordID,
			Date:         r.Date,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Description:  r.Description,
			LunchMinutes: r.LunchMinutes,
			Hours:        r.Hours,
		})
	}
	return out
}

// writeCSV encodes domain rows as CSV. Open records leave end_time empty.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // writes to bytes.Buffer cannot fail
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.ProjectID,
			r.ProjectLabel,
			r.ClientID,
			r.RecordID,
			r.Date,
			r.StartTime.UTC().Format(time.RFC3339),
			formatOptionalTime(r.EndTime),
			r.Description,
			strconv.Itoa(r.LunchMinutes),
			r.Hours,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
