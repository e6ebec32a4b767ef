package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/employees-api/internal/handler/docs"
	"github.com/zhouzirui/employees-api/internal/handler/employee"
	"github.com/zhouzirui/employees-api/internal/handler/events"
	"github.com/zhouzirui/employees-api/internal/logging"
	middlewarePkg "github.com/zhouzirui/employees-api/internal/middleware"
	employeeModel "github.com/zhouzirui/employees-api/internal/model/employee"
	eventService "github.com/zhouzirui/employees-api/internal/service/events"
	"github.com/zhouzirui/employees-api/pkg/utils"
)

// Options collects the collaborators wired into the router. Hub and Docs
// are optional; their routes are skipped when nil.
type Options struct {
	Employees   employeeModel.Store
	Hub         *eventService.Hub
	Docs        *docs.Handler
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logging.StdLogger(logger, logging.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.CORSOrigins))

	r.NotFound(utils.RespondEndpointNotFound)
	r.MethodNotAllowed(utils.RespondEndpointNotFound)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"result": "pong"})
	})

	// Publisher must stay a nil interface when there is no hub.
	var publisher employee.Publisher
	if opts.Hub != nil {
		publisher = opts.Hub
	}
	employeeHandler := employee.New(opts.Employees, publisher, logger)

	r.Route("/api", func(api chi.Router) {
		employeeHandler.RegisterRoutes(api)

		if opts.Hub != nil {
			events.New(opts.Hub, logger).RegisterRoutes(api)
		}
	})

	if opts.Docs != nil {
		r.Route("/docs", opts.Docs.RegisterRoutes)
	}

	return r
}
