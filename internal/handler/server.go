// Package handler implements the HTTP surface of the travel calendar: a JSON
// API under /travels, /calendar and /export, and a server-rendered HTML
// planner under / and /ui.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, travel.go, ui.go, etc.) but share the same Server struct.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/planner"
	"github.com/pkordes/travel-calendar/spec"
)

// TravelServicer defines the business operations the travel handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TravelServicer interface {
	Create(ctx context.Context, t domain.Travel) (domain.Travel, error)
	GetByID(ctx context.Context, id string) (domain.Travel, error)
	List(ctx context.Context) ([]domain.Travel, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int, error)
	Update(ctx context.Context, t domain.Travel) (domain.Travel, error)
	Delete(ctx context.Context, id string) error
}

// ExportServicer defines the export operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
	Travels(ctx context.Context) ([]domain.Travel, error)
}

// PlannerDispatcher is the command entry point of the HTML planner.
// *planner.Controller satisfies it.
type PlannerDispatcher interface {
	Dispatch(ctx context.Context, cmd planner.Command) (planner.View, error)
	DispatchAll(ctx context.Context, cmds ...planner.Command) (planner.View, error)
}

// Options configures a Server. Zero values pick defaults.
type Options struct {
	// CalendarBase is the external calendar endpoint used for calendar links.
	CalendarBase string
	// Clock supplies "now" for the calendar endpoint and iCalendar stamps.
	Clock func() time.Time
	// Protect wraps every mutating route (API writes and /ui actions).
	// Nil leaves them open.
	Protect func(http.Handler) http.Handler
	Logger  *slog.Logger
}

// Server holds the dependencies shared by every handler.
type Server struct {
	travels      TravelServicer
	export       ExportServicer
	planner      PlannerDispatcher
	calendarBase string
	clock        func() time.Time
	protect      func(http.Handler) http.Handler
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(travels TravelServicer, export ExportServicer, ui PlannerDispatcher, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		travels:      travels,
		export:       export,
		planner:      ui,
		calendarBase: opts.CalendarBase,
		clock:        opts.Clock,
		protect:      opts.Protect,
		log:          opts.Logger,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, Options{})
}

// Routes registers every endpoint on a fresh chi router.
// Mount the result under "/" in main.go after the global middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Get("/calendar/{year}/{month}", s.GetCalendar)
	r.Get("/travels", s.ListTravels)
	r.Get("/travels/{id}", s.GetTravel)
	r.Get("/travels/{id}/calendar-link", s.GetCalendarLink)
	r.Get("/export", s.GetExport)

	r.Get("/", s.GetPlanner)
	r.Get("/ui/delete/{id}", s.ConfirmDelete)

	r.Group(func(r chi.Router) {
		if s.protect != nil {
			r.Use(s.protect)
		}
		r.Post("/travels", s.CreateTravel)
		r.Put("/travels/{id}", s.UpdateTravel)
		r.Delete("/travels/{id}", s.DeleteTravel)

		r.Post("/ui/month", s.PostMonth)
		r.Post("/ui/open", s.PostOpen)
		r.Post("/ui/edit/{id}", s.PostEdit)
		r.Post("/ui/close", s.PostClose)
		r.Post("/ui/submit", s.PostSubmit)
		r.Post("/ui/delete/{id}", s.PostDelete)
		r.Post("/ui/export/{id}", s.PostExport)
	})

	return r
}

// serveOpenAPI serves the embedded API description.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
