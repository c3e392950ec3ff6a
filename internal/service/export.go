package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// TravelLister is the read side of TravelService that exports need.
type TravelLister interface {
	List(ctx context.Context) ([]domain.Travel, error)
}

// ExportService assembles the flat full-data export.
type ExportService struct {
	travels TravelLister
}

// NewExportService constructs an ExportService over the provided lister.
func NewExportService(travels TravelLister) *ExportService {
	return &ExportService{travels: travels}
}

// Travels returns every travel in list order, for callers that render their
// own format (iCalendar).
func (s *ExportService) Travels(ctx context.Context) ([]domain.Travel, error) {
	travels, err := s.travels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Travels: %w", err)
	}
	return travels, nil
}

// Export returns one ExportRow per travel, ordered by start date.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	travels, err := s.travels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(travels))
	for _, t := range travels {
		row := domain.ExportRow{
			ID:             t.ID,
			Location:       t.Location,
			Type:           string(t.Type),
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			Accommodation:  t.Accommodation,
			Transportation: t.Transportation,
			Budget:         t.Budget,
			Notes:          t.Notes,
		}
		if n, ok := t.DurationDays(); ok {
			row.Days = strconv.Itoa(n)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
