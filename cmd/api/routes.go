package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.setupAPIRoutes()
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		api.POST("/comparables", a.ComparablesHandler.FindComparables)
		api.GET("/market-stats", a.ComparablesHandler.GetMarketStats)
		api.POST("/locations/resolve", a.LocationHandler.Resolve)
	}
}
