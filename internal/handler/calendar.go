package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-calendar/internal/calendar"
	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/export"
)

// CalendarResponse is the body of GET /calendar/{year}/{month}.
type CalendarResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Title string          `json:"title"`
	Cells []calendar.Cell `json:"cells"`
}

// CalendarLink is the body of GET /travels/{id}/calendar-link.
type CalendarLink struct {
	URL string `json:"url"`
}

// GetCalendar handles GET /calendar/{year}/{month}.
// Month is 1-12. Travel days are marked with has_travel.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("year must be between 1 and 9999"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("month must be between 1 and 12"))
		return
	}

	travels, err := s.travels.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}

	g := calendar.Build(year, time.Month(month), domain.DateOf(s.clock()), travels)
	writeJSON(w, http.StatusOK, CalendarResponse{
		Year:  g.Year,
		Month: int(g.Month),
		Title: g.Title(),
		Cells: g.Cells,
	})
}

// GetCalendarLink handles GET /travels/{id}/calendar-link.
// With ?redirect=true it answers 302 to the external calendar instead of
// returning the link as JSON.
func (s *Server) GetCalendarLink(w http.ResponseWriter, r *http.Request) {
	t, err := s.travels.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}

	link, err := export.GoogleCalendarURL(s.calendarBase, t)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("travel has no valid date range"))
		return
	}

	if redirect, _ := strconv.ParseBool(r.URL.Query().Get("redirect")); redirect {
		http.Redirect(w, r, link, http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, CalendarLink{URL: link})
}
