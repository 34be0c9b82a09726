package wire

import (
	"net/http"

	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/cache"
	"smartride-portal/internal/chatbot"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/middleware"
	"smartride-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	gw *gateway.Client,
	profiles cache.Cache[gateway.UserProfile],
	config *utils.Config,
	logger *zap.Logger,
	opts ...listview.PollerOption,
) *App {
	service := usecase.NewService(repo, gw, profiles, chatbot.New(), config, logger, opts...)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(config.App.CORSOrigin))
	r.Use(middleware.OptionalSession(service.Auth, logger))

	// Apply routes
	wireAuth(r, handler.Auth, service, logger)
	wirePassenger(r, handler.Passenger, logger)
	wireDriver(r, handler.Driver, logger)
	wireAdmin(r, handler.Admin, logger)
	wireCommon(r, handler, service, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
