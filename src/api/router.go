package api

import (
	"net/http"
	"time"

	"bankweb/src/events"
	"bankweb/src/handlers"
	"bankweb/src/middleware"
	"bankweb/src/store"
	"bankweb/src/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Deps struct {
	Store          store.Store
	Sessions       *middleware.Sessions
	Renderer       *views.Renderer
	Publisher      events.Publisher
	Logger         *zap.Logger
	AllowedOrigins []string
	DemoMode       bool
}

func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger.With(zap.String("component", "http"))))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(d.DemoMode, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	authLogger := logger.With(zap.String("component", "auth"))
	r.Get("/", handlers.LoginPage(d.Renderer, logger))
	r.Post("/login", handlers.Login(d.Store, d.Sessions, authLogger))
	r.Get("/register", handlers.RegisterPage(d.Renderer, logger))
	r.Post("/register", handlers.Register(d.Store, authLogger))
	r.Get("/logout", handlers.Logout(authLogger))

	// Pages
	r.With(d.Sessions.RequirePage(authLogger)).Group(func(r chi.Router) {
		r.Get("/dashboard", handlers.Dashboard(d.Store, d.Renderer, logger))
		r.Get("/dashboard/shortcut/{filter}", handlers.DashboardShortcut())
		r.Get("/history", handlers.HistoryPage(d.Store, d.Renderer, logger))
		r.Get("/transfer", handlers.TransferPage(d.Store, d.Renderer, logger))
		r.Post("/transfer", handlers.Transfer(d.Store, d.Publisher, logger.With(zap.String("component", "transfer"))))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(d.Sessions.RequireAPI(authLogger))
		r.Get("/transactions", handlers.APITransactions(d.Store, logger))
		r.Get("/accounts", handlers.APIAccounts(d.Store, logger))
	})

	return r
}
