package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/planner"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// weekdays heads the month grid; the grid starts on Sunday.
var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	View     planner.View
	Weekdays []string
	Types    []typeOption
}

type confirmData struct {
	Travel planner.ListItem
}

// GetPlanner handles GET /: the month grid, the travel list and, when open,
// the plan editor.
func (s *Server) GetPlanner(w http.ResponseWriter, r *http.Request) {
	view, err := s.planner.Dispatch(r.Context(), planner.Refresh{})
	if err != nil {
		s.uiError(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, view)
}

// PostMonth handles POST /ui/month. The form carries either delta (-1, 1) or
// year and month.
func (s *Server) PostMonth(w http.ResponseWriter, r *http.Request) {
	var cmd planner.Command
	if d := r.PostFormValue("delta"); d != "" {
		delta, err := strconv.Atoi(d)
		if err != nil {
			http.Error(w, "delta must be an integer", http.StatusUnprocessableEntity)
			return
		}
		cmd = planner.NavigateMonth{Delta: delta}
	} else {
		year, yerr := strconv.Atoi(r.PostFormValue("year"))
		month, merr := strconv.Atoi(r.PostFormValue("month"))
		if yerr != nil || merr != nil {
			http.Error(w, "year and month must be integers", http.StatusUnprocessableEntity)
			return
		}
		cmd = planner.GoToMonth{Year: year, Month: time.Month(month)}
	}
	s.dispatchAndReturn(w, r, cmd)
}

// PostOpen handles POST /ui/open, sent by a click on a day cell.
func (s *Server) PostOpen(w http.ResponseWriter, r *http.Request) {
	s.dispatchAndReturn(w, r, planner.OpenCreate{Date: r.PostFormValue("date")})
}

// PostEdit handles POST /ui/edit/{id}.
func (s *Server) PostEdit(w http.ResponseWriter, r *http.Request) {
	s.dispatchAndReturn(w, r, planner.OpenEdit{ID: chi.URLParam(r, "id")})
}

// PostClose handles POST /ui/close.
func (s *Server) PostClose(w http.ResponseWriter, r *http.Request) {
	s.dispatchAndReturn(w, r, planner.CloseEditor{})
}

// PostSubmit handles POST /ui/submit. The form values are applied to the
// editor and saved. On a validation failure the page is re-rendered with the
// editor open and the messages shown.
func (s *Server) PostSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(planner.FieldOrder))
	for _, name := range planner.FieldOrder {
		if _, ok := r.PostForm[name]; ok {
			values[name] = r.PostForm.Get(name)
		}
	}

	cmds := append(planner.FormCommands(values), planner.SubmitPlan{})
	view, err := s.planner.DispatchAll(r.Context(), cmds...)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			s.renderPage(w, r, http.StatusUnprocessableEntity, view)
			return
		}
		s.uiError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmDelete handles GET /ui/delete/{id}: the "are you sure" page.
func (s *Server) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	s.renderConfirm(w, r, chi.URLParam(r, "id"))
}

// PostDelete handles POST /ui/delete/{id}. Without confirm=yes it answers
// with the confirmation page instead of deleting.
func (s *Server) PostDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, err := s.planner.Dispatch(r.Context(), planner.DeletePlan{
		ID:        id,
		Confirmed: r.PostFormValue("confirm") == "yes",
	})
	if errors.Is(err, planner.ErrConfirmationRequired) {
		s.renderConfirm(w, r, id)
		return
	}
	if err != nil {
		s.uiError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PostExport handles POST /ui/export/{id}. The form targets a new tab, which
// is redirected to the external calendar.
func (s *Server) PostExport(w http.ResponseWriter, r *http.Request) {
	view, err := s.planner.Dispatch(r.Context(), planner.ExportPlan{ID: chi.URLParam(r, "id")})
	if err != nil {
		s.uiError(w, r, err)
		return
	}
	http.Redirect(w, r, view.ExportURL, http.StatusSeeOther)
}

// dispatchAndReturn applies cmd and sends the browser back to the planner.
func (s *Server) dispatchAndReturn(w http.ResponseWriter, r *http.Request, cmd planner.Command) {
	if _, err := s.planner.Dispatch(r.Context(), cmd); err != nil {
		s.uiError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, view planner.View) {
	types := make([]typeOption, len(domain.TravelTypes))
	for i, t := range domain.TravelTypes {
		types[i] = typeOption{
			Value:    string(t),
			Label:    t.Glyph() + " " + string(t),
			Selected: string(t) == view.Editor.Form.Type,
		}
	}
	s.execute(w, r, status, "page.html", pageData{View: view, Weekdays: weekdays, Types: types})
}

func (s *Server) renderConfirm(w http.ResponseWriter, r *http.Request, id string) {
	t, err := s.travels.GetByID(r.Context(), id)
	if err != nil {
		s.uiError(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, "confirm.html", confirmData{Travel: planner.NewListItem(t)})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.ErrorContext(r.Context(), "template render failed", "template", name, "error", err)
	}
}

// uiError answers a failed planner command with a plain-text error page.
func (s *Server) uiError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "travel plan not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, planner.ErrEditorClosed):
		http.Error(w, unwrapMessage(err), http.StatusUnprocessableEntity)
	default:
		s.log.ErrorContext(r.Context(), "planner command failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
