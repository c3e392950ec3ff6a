// Package planner is the travel planner's controller. It owns the
// application state (visible month and plan editor) and applies user
// commands to it through a single Dispatch function, so the whole UI flow
// can be driven and tested without a rendering surface.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/travel-calendar/internal/calendar"
	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/export"
	"github.com/pkordes/travel-calendar/internal/service"
)

// ErrEditorClosed is returned for form commands while no editor is open.
var ErrEditorClosed = errors.New("editor is not open")

// ErrConfirmationRequired is returned for an unconfirmed DeletePlan.
var ErrConfirmationRequired = errors.New("delete requires confirmation")

// TravelServicer defines the travel operations the controller depends on.
// *service.TravelService satisfies it.
type TravelServicer interface {
	Create(ctx context.Context, t domain.Travel) (domain.Travel, error)
	GetByID(ctx context.Context, id string) (domain.Travel, error)
	List(ctx context.Context) ([]domain.Travel, error)
	Update(ctx context.Context, t domain.Travel) (domain.Travel, error)
	Delete(ctx context.Context, id string) error
}

// State is the complete mutable UI state.
type State struct {
	Year   int
	Month  time.Month
	Editor Editor
}

// Options configures a Controller. Zero values pick defaults.
type Options struct {
	// Clock supplies "now"; its calendar date is today. Defaults to time.Now.
	Clock func() time.Time
	// CalendarBase is the external calendar endpoint for ExportPlan.
	CalendarBase string
	Logger       *slog.Logger
}

// Controller applies commands to State. It is safe for concurrent use:
// Dispatch calls are serialised.
type Controller struct {
	mu       sync.Mutex
	travels  TravelServicer
	clock    func() time.Time
	calendar string
	log      *slog.Logger
	state    State
}

// New constructs a Controller showing the current month with the editor closed.
func New(travels TravelServicer, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	now := opts.Clock()
	return &Controller{
		travels:  travels,
		clock:    opts.Clock,
		calendar: opts.CalendarBase,
		log:      opts.Logger,
		state:    State{Year: now.Year(), Month: now.Month()},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Editor = s.Editor.snapshot()
	return s
}

// Dispatch applies cmd and returns the re-rendered view. The view is returned
// even when err is non-nil so a caller can redisplay the editor with its
// validation messages.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exportURL, err := c.apply(ctx, cmd)
	if err != nil {
		c.log.DebugContext(ctx, "command rejected", "command", fmt.Sprintf("%T", cmd), "error", err)
	}

	view, verr := c.render(ctx)
	if verr != nil {
		return View{}, errors.Join(err, verr)
	}
	view.ExportURL = exportURL
	return view, err
}

// DispatchAll applies cmds in order and stops at the first error.
func (c *Controller) DispatchAll(ctx context.Context, cmds ...Command) (View, error) {
	if len(cmds) == 0 {
		return c.Dispatch(ctx, Refresh{})
	}
	var (
		view View
		err  error
	)
	for _, cmd := range cmds {
		if view, err = c.Dispatch(ctx, cmd); err != nil {
			return view, err
		}
	}
	return view, nil
}

// apply is the state-transition function. It runs with c.mu held.
func (c *Controller) apply(ctx context.Context, cmd Command) (string, error) {
	st := &c.state

	switch cmd := cmd.(type) {
	case Refresh:
		return "", nil

	case NavigateMonth:
		st.Year, st.Month = calendar.Shift(st.Year, st.Month, cmd.Delta)
		return "", nil

	case GoToMonth:
		if cmd.Month < time.January || cmd.Month > time.December {
			return "", fmt.Errorf("%w: month must be 1-12", domain.ErrValidation)
		}
		st.Year, st.Month = cmd.Year, cmd.Month
		return "", nil

	case OpenCreate:
		if _, err := domain.ParseDate(cmd.Date); err != nil {
			return "", fmt.Errorf("planner.OpenCreate: %w", err)
		}
		st.Editor.OpenCreate(cmd.Date)
		return "", nil

	case OpenEdit:
		t, err := c.travels.GetByID(ctx, cmd.ID)
		if err != nil {
			return "", fmt.Errorf("planner.OpenEdit: %w", err)
		}
		st.Editor.OpenEdit(t)
		return "", nil

	case SetField:
		return "", st.Editor.SetField(cmd.Field, cmd.Value)

	case CloseEditor:
		st.Editor.Close()
		return "", nil

	case SubmitPlan:
		return "", c.submit(ctx)

	case DeletePlan:
		if !cmd.Confirmed {
			return "", ErrConfirmationRequired
		}
		err := c.travels.Delete(ctx, cmd.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("planner.DeletePlan: %w", err)
		}
		c.log.InfoContext(ctx, "travel plan deleted", "id", cmd.ID, "existed", err == nil)
		return "", nil

	case ExportPlan:
		t, err := c.travels.GetByID(ctx, cmd.ID)
		if err != nil {
			return "", fmt.Errorf("planner.ExportPlan: %w", err)
		}
		link, err := export.GoogleCalendarURL(c.calendar, t)
		if err != nil {
			return "", fmt.Errorf("planner.ExportPlan: %w", err)
		}
		return link, nil
	}

	return "", fmt.Errorf("planner: unknown command %T", cmd)
}

// submit persists the editor's form. On success the editor closes; on failure
// it stays open with Errors describing what to fix.
func (c *Controller) submit(ctx context.Context) error {
	ed := &c.state.Editor
	if !ed.IsOpen() {
		return ErrEditorClosed
	}

	var (
		saved domain.Travel
		err   error
	)
	if ed.EditID != "" {
		saved, err = c.travels.Update(ctx, ed.Travel())
	} else {
		saved, err = c.travels.Create(ctx, ed.Travel())
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			ed.Errors = service.FieldErrors(err)
		case errors.Is(err, domain.ErrNotFound):
			ed.Errors = map[string]string{"": "this travel plan no longer exists"}
		}
		return fmt.Errorf("planner.SubmitPlan: %w", err)
	}

	c.log.InfoContext(ctx, "travel plan saved", "id", saved.ID, "mode", ed.Mode.String())
	ed.Close()
	return nil
}
