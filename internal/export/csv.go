package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "location", "type", "start_date", "end_date", "days",
	"accommodation", "transportation", "budget", "notes",
}

// WriteCSV encodes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.ID,
		r.Location,
		r.Type,
		r.StartDate,
		r.EndDate,
		r.Days,
		r.Accommodation,
		r.Transportation,
		r.Budget,
		r.Notes,
	}
}
