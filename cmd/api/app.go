package main

import (
	"net/http"
	"os"

	"costasight-comparables/internal/comparables"
	"costasight-comparables/internal/feed"
	"costasight-comparables/internal/geo"
	"costasight-comparables/internal/handlers"
	"costasight-comparables/internal/location"
	"costasight-comparables/internal/middleware"
	"costasight-comparables/internal/stats"
	"costasight-comparables/internal/validators"
	"costasight-comparables/pkg/cache"
	"costasight-comparables/pkg/config"
	"costasight-comparables/pkg/logger"
	"costasight-comparables/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config             *config.Config
	Router             *gin.Engine
	ComparablesHandler *handlers.ComparablesHandler
	LocationHandler    *handlers.LocationHandler
	RateLimiter        *middleware.RateLimiter
	Server             *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the Redis cache when the location cache runs on Redis
func (a *App) initializeCache() {
	if a.Config.Location.CacheBackend != "redis" {
		return
	}
	if err := cache.InitRedis(a.Config.Redis.Host, a.Config.Redis.Port, a.Config.Redis.Password, a.Config.Redis.DB); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(100/60.0), 10)
	go a.RateLimiter.Cleanup()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	cfg := a.Config

	// feed
	var source feed.Source
	if cfg.Feed.Path != "" {
		source = &feed.FileSource{Path: cfg.Feed.Path}
	} else {
		source = feed.NewHTTPSource(cfg.Feed.URL, cfg.Feed.MaxRetries)
	}
	provider := feed.NewProvider(source, cfg.FeedCacheTTL())

	// location resolution
	geocoder := geo.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, cfg.GeocoderTimeout(), cfg.Geocoder.MaxRetries)
	classifier := location.NewClassifier(cfg.Location.BroadAreas)
	var locationCache location.Cache
	if cfg.Location.CacheBackend == "redis" {
		locationCache = location.NewRedisCache(cache.RedisClient)
	} else {
		locationCache = location.NewMemoryCache()
	}
	resolver := location.NewResolver(geocoder, locationCache, classifier, cfg.LocationCacheTTL(), cfg.GeocoderTimeout())

	// matching and statistics
	matcher := comparables.NewMatcher(cfg.Matching, resolver)
	aggregator := stats.NewAggregator()
	validator := validators.NewSearchValidator()

	// handlers
	a.ComparablesHandler = handlers.NewComparablesHandler(provider, matcher, aggregator, validator)
	a.LocationHandler = handlers.NewLocationHandler(resolver, validator)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.Config.Location.CacheBackend == "redis" {
		cache.CloseRedis()
	}
}
