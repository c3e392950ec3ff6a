package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// TravelRequest is the body of POST /travels and PUT /travels/{id}.
// Dates use the YYYY-MM-DD format; a malformed date fails decoding.
type TravelRequest struct {
	Date           *openapi_types.Date `json:"date,omitempty"`
	Location       string              `json:"location"`
	Type           string              `json:"type,omitempty"`
	StartDate      openapi_types.Date  `json:"startDate"`
	EndDate        openapi_types.Date  `json:"endDate"`
	Accommodation  string              `json:"accommodation,omitempty"`
	Transportation string              `json:"transportation,omitempty"`
	Budget         string              `json:"budget,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

// Travel is the API representation of a stored record. Dates are passed
// through as stored so that legacy records with odd dates still round-trip.
type Travel struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	Type           string `json:"type"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Accommodation  string `json:"accommodation"`
	Transportation string `json:"transportation"`
	Budget         string `json:"budget"`
	Notes          string `json:"notes"`
	Glyph          string `json:"glyph"`
	// Days is the inclusive duration, omitted when the range is unparsable.
	Days *int `json:"days,omitempty"`
}

// Pagination describes the page returned by ListTravels.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TravelList is the body of GET /travels.
type TravelList struct {
	Data       []Travel   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTravel handles POST /travels.
func (s *Server) CreateTravel(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTravel(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.travels.Create(r.Context(), t)
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}

	writeJSON(w, http.StatusCreated, travelToResponse(created))
}

// ListTravels handles GET /travels.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTravels(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	travels, total, err := s.travels.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}

	data := make([]Travel, len(travels))
	for i, t := range travels {
		data[i] = travelToResponse(t)
	}
	writeJSON(w, http.StatusOK, TravelList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTravel handles GET /travels/{id}.
func (s *Server) GetTravel(w http.ResponseWriter, r *http.Request) {
	t, err := s.travels.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}
	writeJSON(w, http.StatusOK, travelToResponse(t))
}

// UpdateTravel handles PUT /travels/{id}.
func (s *Server) UpdateTravel(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTravel(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	t.ID = chi.URLParam(r, "id")

	updated, err := s.travels.Update(r.Context(), t)
	if err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}
	writeJSON(w, http.StatusOK, travelToResponse(updated))
}

// DeleteTravel handles DELETE /travels/{id}.
func (s *Server) DeleteTravel(w http.ResponseWriter, r *http.Request) {
	if err := s.travels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err, "travel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeTravel reads a TravelRequest body into a domain.Travel.
// Returns an error if the body is missing, malformed, or lacks a date range.
func decodeTravel(r *http.Request) (domain.Travel, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.Travel{}, errors.New("request body is required")
	}
	var body TravelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return domain.Travel{}, errors.New("request body is not valid JSON: " + err.Error())
	}
	if body.StartDate.IsZero() {
		return domain.Travel{}, errors.New("startDate is required")
	}
	if body.EndDate.IsZero() {
		return domain.Travel{}, errors.New("endDate is required")
	}

	t := domain.Travel{
		Location:       body.Location,
		Type:           domain.TravelType(body.Type),
		StartDate:      domain.FormatDate(body.StartDate.Time),
		EndDate:        domain.FormatDate(body.EndDate.Time),
		Accommodation:  body.Accommodation,
		Transportation: body.Transportation,
		Budget:         body.Budget,
		Notes:          body.Notes,
	}
	if body.Date != nil {
		t.Date = domain.FormatDate(body.Date.Time)
	}
	return t, nil
}

// travelToResponse converts a domain.Travel into its API representation.
func travelToResponse(t domain.Travel) Travel {
	resp := Travel{
		ID:             t.ID,
		Date:           t.Date,
		Location:       t.Location,
		Type:           string(t.Type),
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Accommodation:  t.Accommodation,
		Transportation: t.Transportation,
		Budget:         t.Budget,
		Notes:          t.Notes,
		Glyph:          t.Glyph(),
	}
	if days, ok := t.DurationDays(); ok {
		resp.Days = &days
	}
	return resp
}

// optionalInt parses an integer query parameter; absent yields nil.
func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &n, nil
}
