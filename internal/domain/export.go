package domain

// ExportRow is one flat row of the full-data export: one row per travel, in
// list order, with derived display values resolved.
// Days is empty when the stored range is unparsable.
type ExportRow struct {
	ID             string
	Location       string
	Type           string
	StartDate      string
	EndDate        string
	Days           string
	Accommodation  string
	Transportation string
	Budget         string
	Notes          string
}
