// File: servicehub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/api"
	"servicehub/config"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/routes"
	"servicehub/services/booking"
	"servicehub/services/geo"
	"servicehub/services/search"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitSessionCache()
	utils.InitGeoCache()

	// The auth service is an external collaborator; the token arrives from
	// the environment (or later via the frontend) and is only stored here.
	tokens := utils.NewTokenStore(os.Getenv("SERVICEHUB_TOKEN"))

	// Data sources: real backend, or the synthetic fleet in demo mode.
	var (
		providerAPI api.ProviderAPI
		bookingAPI  api.BookingAPI
	)
	pushSource := geo.NewPushSource()
	var coordSource geo.CoordinateSource = pushSource
	if config.AppConfig.DemoMode {
		logger.Warn("Demo mode enabled: serving synthetic providers, no backend calls")
		demo := api.NewDemoProviderAPI(39.7817, -89.6501)
		providerAPI = demo
		bookingAPI = api.NewDemoBookingAPI(demo)
		coordSource = geo.StaticSource{Position: models.Coordinates{Latitude: 39.7817, Longitude: -89.6501}}
	} else {
		client := api.NewClient(
			config.AppConfig.BackendBaseURL,
			time.Duration(config.AppConfig.BackendTimeoutSec)*time.Second,
			tokens,
			logger,
		)
		providerAPI = api.NewRESTProviderAPI(client)
		bookingAPI = api.NewRESTBookingAPI(client)
	}

	// Geolocation: primary geocoder with documented fallback.
	geocoder := &geo.ChainGeocoder{
		Primary:  geo.NewNominatimGeocoder(config.AppConfig.NominatimBaseURL),
		Fallback: geo.NewBigDataCloudGeocoder(config.AppConfig.BDCBaseURL),
		Logger:   logger,
	}
	geoService := geo.NewDefaultGeoService(
		coordSource,
		geocoder,
		utils.GetGeoCacheClient(),
		time.Duration(config.AppConfig.GeoTimeoutSec)*time.Second,
		logger,
	)

	// Discovery pipeline.
	resultsCache := search.NewResultsCache(providerAPI, utils.GetCacheClient(), logger)
	searchService := &search.DefaultSearchService{
		Cache:    resultsCache,
		Sessions: utils.GetSessionCacheClient(),
		Radius: search.RadiusConfig{
			InitialKm:       config.AppConfig.SearchRadiusKm,
			StepKm:          config.AppConfig.RadiusStepKm,
			CeilingKm:       config.AppConfig.RadiusCeilingKm,
			SparseThreshold: config.AppConfig.SparseThreshold,
			SparseMaxKm:     config.AppConfig.SparseMaxRadiusKm,
		},
		Logger: logger,
	}

	// Booking flow.
	availabilityService := booking.NewDefaultAvailabilityService(bookingAPI, logger)
	bookingRegistry := booking.NewRegistry(bookingAPI, tokens, logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Search:   handlers.NewSearchHandler(searchService, logger),
		Provider: handlers.NewProviderHandler(providerAPI, logger),
		Booking:  handlers.NewBookingHandler(availabilityService, bookingRegistry, logger),
		Geo:      handlers.NewGeoHandler(geoService, pushSource, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting gateway on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Gateway failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gateway...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Gateway stopped")
}
