package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"osm-report-server/api"
	"osm-report-server/api/overpass"
	"osm-report-server/config"
	"osm-report-server/dao/redis"
	"osm-report-server/db"
	"osm-report-server/registry"
	"osm-report-server/server"
	"osm-report-server/server/handlers"
	services "osm-report-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                *config.Config
	RedisClient           db.RedisClient
	RedisSessionDao       *redis.RedisSessionDAO
	FeatureTypeRegistry   *registry.FeatureTypeRegistry
	OverpassAPI           overpass.OverpassAPI
	ReportService         *services.ReportService
	SessionCleanupService *services.SessionCleanupService
	ReportHandler         *handlers.ReportHandler
	SessionHandler        *handlers.SessionHandler
	MuxRouter             *mux.Router
	Router                *server.Router
	OsmReportHttpServer   *server.OsmReportHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	cfg := config.Load()
	ctx := context.Background()

	// Initialize Redis client - mock keeps local runs self-contained
	var redisClient db.RedisClient
	if env != "prod" {
		redisClient = db.NewMockRedisClient(ctx)
		log.Printf("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient = db.NewDefaultRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	// Initialize Redis session DAO
	redisSessionDao := redis.NewRedisSessionDAO(redisClient)

	// Initialize the feature type registry, from file when configured
	var featureTypeRegistry *registry.FeatureTypeRegistry
	if cfg.FeatureTypesPath != "" {
		var err error
		featureTypeRegistry, err = registry.NewFeatureTypeRegistryFromFile(cfg.FeatureTypesPath, cfg.MaxFeatureTypes)
		if err != nil {
			panic(fmt.Sprintf("Failed to load feature types from %s: %v", cfg.FeatureTypesPath, err))
		}
		log.Printf("Loaded feature types from %s", cfg.FeatureTypesPath)
	} else {
		featureTypeRegistry = registry.NewFeatureTypeRegistry(cfg.MaxFeatureTypes)
	}

	// Initialize Overpass API - using mock outside prod
	var overpassApi overpass.OverpassAPI
	if env != "prod" {
		overpassApi = overpass.NewOverpassApiClientMock()
		log.Printf("Using mock overpass api")
	} else {
		log.Printf("Using prod overpass api")
		httpClient := api.NewHTTPClient(cfg.OverpassEndpoint, cfg.OverpassTimeout)
		overpassApi = overpass.NewOverpassApiClient(
			httpClient,
			int(cfg.OverpassTimeout.Seconds()),
			cfg.MaxElementsPerRequest)
	}

	// Initialize service layer
	reportService := services.NewReportService(cfg, featureTypeRegistry, overpassApi, redisSessionDao)
	sessionCleanupService := services.NewSessionCleanupService(redisSessionDao, cfg.OutputDir)

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, featureTypeRegistry)
	sessionHandler := handlers.NewSessionHandler(reportService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(reportHandler, sessionHandler, muxRouter)

	// Initialize the HTTP server
	osmReportHttpServer := server.NewOsmReportHttpServer(router, muxRouter, cfg.HTTPAddress)

	return &Container{
		Config:                cfg,
		RedisClient:           redisClient,
		RedisSessionDao:       redisSessionDao,
		FeatureTypeRegistry:   featureTypeRegistry,
		OverpassAPI:           overpassApi,
		ReportService:         reportService,
		SessionCleanupService: sessionCleanupService,
		ReportHandler:         reportHandler,
		SessionHandler:        sessionHandler,
		MuxRouter:             muxRouter,
		Router:                router,
		OsmReportHttpServer:   osmReportHttpServer,
	}
}
