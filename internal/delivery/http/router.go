package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"shoresquad/internal/delivery/http/controllers"
	"shoresquad/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events  *controllers.EventController
	Crews   *controllers.CrewController
	Session *controllers.SessionController
	Views   *controllers.ViewController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	// Page and rendered regions
	mux.HandleFunc("GET /{$}", c.Views.Page)
	mux.HandleFunc("GET /fragments/{name}", c.Views.Fragment)
	mux.HandleFunc("GET /map", c.Views.Map)
	mux.HandleFunc("GET /notifications", c.Views.Notifications)
	mux.HandleFunc("GET /healthz", c.Views.Healthz)

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("POST /events/{eventID}/join", c.Events.JoinEvent)
	mux.HandleFunc("POST /events/{eventID}/share", c.Events.ShareEvent)

	// Crews
	mux.HandleFunc("GET /crews", c.Crews.ListCrews)
	mux.HandleFunc("POST /crews", c.Crews.CreateCrew)
	mux.HandleFunc("POST /crews/{crewID}/join", c.Crews.JoinCrew)

	// Session; POST serves the page form
	mux.HandleFunc("GET /me", c.Session.GetMe)
	mux.HandleFunc("PUT /me", c.Session.UpdateMe)
	mux.HandleFunc("POST /me", c.Session.UpdateMe)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with recovery, request logging and CORS.
func NewHandler(logger *slog.Logger, allowedOrigins []string, c Controllers) http.Handler {
	var h http.Handler = NewRouter(c)
	h = middleware.Recover(logger, h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.CORS(allowedOrigins, h)
}
