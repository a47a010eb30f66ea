package router

import (
	"net/http"

	"atelier/internal/catalog"
	"atelier/internal/checkout"
	"atelier/internal/config"
	"atelier/internal/gate"
	"atelier/internal/handlers"
	"atelier/internal/middleware"
	"atelier/internal/session"
	"atelier/internal/storage"
	"atelier/internal/upstream"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(cfg config.Config, store storage.Store, logger zerolog.Logger) *mux.Router {
	secret := cfg.SessionSecret
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		logger.Warn().Msg("SESSION_SECRET not set, using default key")
	}

	manager := session.NewManager(secret, logger)
	api := upstream.NewClient(cfg.UpstreamURL, cfg.Locale, logger)
	catalogService := catalog.NewService(api, store, logger)
	initiator := checkout.NewInitiator(api, logger)

	authHandler := handlers.NewAuthHandler(api, cfg.Locale, logger)
	cartHandler := handlers.NewCartHandler(store, cfg.Locale, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.Locale, logger)
	checkoutHandler := handlers.NewCheckoutHandler(initiator, store, cfg.Locale, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.SessionLoading(manager, store, logger))

	// Page probes, each behind its admission gate. Decisions run
	// synchronously against the restored session on every navigation.
	authOnly := gate.Middleware(gate.AuthOnlyRedirect)
	r.Handle("/login", authOnly(authHandler.PublicPage("login"))).Methods("GET")
	r.Handle("/register", authOnly(authHandler.PublicPage("register"))).Methods("GET")

	profilePage := r.PathPrefix("/profile").Subrouter()
	profilePage.Use(gate.Middleware(gate.RequireAuth))
	profilePage.HandleFunc("", authHandler.Profile).Methods("GET")

	collectionPages := r.PathPrefix("/collections").Subrouter()
	collectionPages.Use(gate.Middleware(gate.RequireAuthAndCapability))
	collectionPages.HandleFunc("/{slug}", catalogHandler.GetCollection).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.RequestValidation())

	auth := apiRouter.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	auth.HandleFunc("/me", authHandler.Me).Methods("GET")
	auth.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")

	apiRouter.HandleFunc("/request-evaluation", authHandler.RequestEvaluation).Methods("POST")

	cartRoutes := apiRouter.PathPrefix("/cart").Subrouter()
	cartRoutes.HandleFunc("", cartHandler.GetCart).Methods("GET")
	cartRoutes.HandleFunc("", cartHandler.ClearCart).Methods("DELETE")
	cartRoutes.HandleFunc("/items", cartHandler.AddItem).Methods("POST")
	cartRoutes.HandleFunc("/items/{id}", cartHandler.UpdateItem).Methods("PATCH")
	cartRoutes.HandleFunc("/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	cartRoutes.HandleFunc("/sidebar", cartHandler.SetSidebar).Methods("PUT")

	apiRouter.HandleFunc("/checkout", checkoutHandler.Start).Methods("POST")

	gatedCatalog := apiRouter.PathPrefix("/collections").Subrouter()
	gatedCatalog.Use(gate.Middleware(gate.RequireAuthAndCapability))
	gatedCatalog.HandleFunc("/{slug}", catalogHandler.GetCollection).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
