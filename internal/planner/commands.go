package planner

import "time"

// Command is one user action. Every UI event maps to exactly one Command,
// consumed by Controller.Dispatch.
type Command interface {
	command()
}

// NavigateMonth moves the visible month by Delta (negative goes back).
type NavigateMonth struct{ Delta int }

// GoToMonth shows a specific month.
type GoToMonth struct {
	Year  int
	Month time.Month
}

// OpenCreate opens the editor for a new plan on Date (YYYY-MM-DD), as a day
// cell click does.
type OpenCreate struct{ Date string }

// OpenEdit opens the editor on an existing plan.
type OpenEdit struct{ ID string }

// SetField changes one form field of the open editor.
type SetField struct {
	Field string
	Value string
}

// SubmitPlan saves the open editor: an update when an edit id is remembered,
// otherwise a create.
type SubmitPlan struct{}

// CloseEditor closes the editor (cancel button or click outside the form).
type CloseEditor struct{}

// DeletePlan removes a plan. Confirmed must be set by the caller after asking
// the user; unconfirmed deletes are refused.
type DeletePlan struct {
	ID        string
	Confirmed bool
}

// ExportPlan produces the external calendar link for a plan.
type ExportPlan struct{ ID string }

// Refresh re-renders without changing state.
type Refresh struct{}

func (NavigateMonth) command() {}
func (GoToMonth) command()     {}
func (OpenCreate) command()    {}
func (OpenEdit) command()      {}
func (SetField) command()      {}
func (SubmitPlan) command()    {}
func (CloseEditor) command()   {}
func (DeletePlan) command()    {}
func (ExportPlan) command()    {}
func (Refresh) command()       {}

// FormCommands turns submitted form values into SetField commands in
// FieldOrder. Fields absent from values are left untouched.
func FormCommands(values map[string]string) []Command {
	var cmds []Command
	for _, name := range FieldOrder {
		if v, ok := values[name]; ok {
			cmds = append(cmds, SetField{Field: name, Value: v})
		}
	}
	return cmds
}
