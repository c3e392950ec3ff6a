package planner

import (
	"fmt"
	"maps"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// Mode is the state of the plan editor.
type Mode int

const (
	// ModeClosed means no form is shown.
	ModeClosed Mode = iota
	// ModeCreate shows an empty form pre-filled with a clicked date.
	ModeCreate
	// ModeEdit shows an existing record; EditID names it.
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form field names, matching the JSON names of domain.Travel.
const (
	FieldDate           = "date"
	FieldLocation       = "location"
	FieldType           = "type"
	FieldStartDate      = "startDate"
	FieldEndDate        = "endDate"
	FieldAccommodation  = "accommodation"
	FieldTransportation = "transportation"
	FieldBudget         = "budget"
	FieldNotes          = "notes"
)

// FieldOrder is the order in which submitted form values are applied.
// startDate comes before date so that a cleared start date is seen as empty
// when the date change is applied.
var FieldOrder = []string{
	FieldLocation, FieldType, FieldStartDate, FieldEndDate, FieldDate,
	FieldAccommodation, FieldTransportation, FieldBudget, FieldNotes,
}

// Form holds the editor's field values as typed.
type Form struct {
	Date           string
	Location       string
	Type           string
	StartDate      string
	EndDate        string
	Accommodation  string
	Transportation string
	Budget         string
	Notes          string
}

func (f *Form) field(name string) (*string, bool) {
	switch name {
	case FieldDate:
		return &f.Date, true
	case FieldLocation:
		return &f.Location, true
	case FieldType:
		return &f.Type, true
	case FieldStartDate:
		return &f.StartDate, true
	case FieldEndDate:
		return &f.EndDate, true
	case FieldAccommodation:
		return &f.Accommodation, true
	case FieldTransportation:
		return &f.Transportation, true
	case FieldBudget:
		return &f.Budget, true
	case FieldNotes:
		return &f.Notes, true
	}
	return nil, false
}

// Editor is the modal form state machine. The zero value is closed.
type Editor struct {
	Mode   Mode
	EditID string
	Form   Form
	// Errors maps field names to validation messages from the last submit.
	// The empty key holds a message not tied to a field.
	Errors map[string]string
}

// OpenCreate resets the form for a new record on date and forgets any edit id.
func (e *Editor) OpenCreate(date string) {
	*e = Editor{
		Mode: ModeCreate,
		Form: Form{Date: date, StartDate: date, EndDate: date, Type: string(domain.TypeVacation)},
	}
}

// OpenEdit fills the form from t and remembers its id.
func (e *Editor) OpenEdit(t domain.Travel) {
	*e = Editor{
		Mode:   ModeEdit,
		EditID: t.ID,
		Form: Form{
			Date:           t.Date,
			Location:       t.Location,
			Type:           string(t.Type),
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			Accommodation:  t.Accommodation,
			Transportation: t.Transportation,
			Budget:         t.Budget,
			Notes:          t.Notes,
		},
	}
}

// Close hides the form and forgets the edit id.
func (e *Editor) Close() {
	*e = Editor{}
}

// IsOpen reports whether the form is shown.
func (e Editor) IsOpen() bool {
	return e.Mode != ModeClosed
}

// SetField updates one field. Changing the travel date while the start date
// is empty copies the date into the start date; the sync is one-way and
// happens only at the moment of the change.
func (e *Editor) SetField(name, value string) error {
	if !e.IsOpen() {
		return ErrEditorClosed
	}
	p, ok := e.Form.field(name)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", domain.ErrValidation, name)
	}
	changed := *p != value
	*p = value
	if name == FieldDate && changed && e.Form.StartDate == "" {
		e.Form.StartDate = value
	}
	return nil
}

// Travel converts the form into a record. ID is the edit id, empty in create mode.
func (e *Editor) Travel() domain.Travel {
	return domain.Travel{
		ID:             e.EditID,
		Date:           e.Form.Date,
		Location:       e.Form.Location,
		Type:           domain.TravelType(e.Form.Type),
		StartDate:      e.Form.StartDate,
		EndDate:        e.Form.EndDate,
		Accommodation:  e.Form.Accommodation,
		Transportation: e.Form.Transportation,
		Budget:         e.Form.Budget,
		Notes:          e.Form.Notes,
	}
}

// snapshot returns a copy safe to hand to renderers.
func (e Editor) snapshot() Editor {
	e.Errors = maps.Clone(e.Errors)
	return e
}
