// Package handler: export.go implements GET /export.
// Returns every travel as a flat table or as an iCalendar feed.
// ?format=json (default), ?format=csv or ?format=ics.
package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/export"
)

// ExportRow is one row of the JSON export.
type ExportRow struct {
	ID             string `json:"id"`
	Location       string `json:"location"`
	Type           string `json:"type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Days           *int   `json:"days,omitempty"`
	Accommodation  string `json:"accommodation,omitempty"`
	Transportation string `json:"transportation,omitempty"`
	Budget         string `json:"budget,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Supported values of the ?format= query parameter.
const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatICS  = "ics"
)

// GetExport implements GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}

	switch format {
	case formatJSON:
		rows, err := s.export.Export(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, "export")
			return
		}
		out := make([]ExportRow, len(rows))
		for i, row := range rows {
			out[i] = domainRowToResponse(row)
		}
		writeJSON(w, http.StatusOK, out)

	case formatCSV:
		rows, err := s.export.Export(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, "export")
			return
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rows); err != nil {
			s.writeServiceError(w, r, err, "export")
			return
		}
		writeAttachment(w, "text/csv", "travels.csv", buf.Bytes())

	case formatICS:
		travels, err := s.export.Travels(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, "export")
			return
		}
		writeAttachment(w, "text/calendar; charset=utf-8", "travels.ics", []byte(export.ICS(travels, s.clock())))

	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be one of json, csv, ics"))
	}
}

// writeAttachment sends body as a downloadable file.
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// An empty Days becomes an omitted field.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	row := ExportRow{
		ID:             r.ID,
		Location:       r.Location,
		Type:           r.Type,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Accommodation:  r.Accommodation,
		Transportation: r.Transportation,
		Budget:         r.Budget,
		Notes:          r.Notes,
	}
	if days, err := strconv.Atoi(r.Days); err == nil {
		row.Days = &days
	}
	return row
}
