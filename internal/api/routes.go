package api

import (
	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse-go/internal/api/handlers"
	"github.com/salespulse/salespulse-go/internal/database"
	"github.com/salespulse/salespulse-go/internal/services"
)

// SetupRoutes wires the dashboard API onto the router. db and redis may be
// nil when those collaborators are disabled; the handlers degrade instead of
// panicking.
func SetupRoutes(router *gin.Engine, db *database.PostgresDB, redis *database.RedisClient, sales *services.SalesService, forecast *services.ForecastService) {
	healthHandler := handlers.NewHealthHandler(db, redis)
	salesHandler := handlers.NewSalesHandler(sales)
	forecastHandler := handlers.NewForecastHandler(forecast)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		salesRoutes := v1.Group("/sales")
		{
			salesRoutes.GET("/series", salesHandler.GetSeries)
			salesRoutes.GET("/summary", salesHandler.GetSummary)
			salesRoutes.GET("/trendline", salesHandler.GetTrendline)
			salesRoutes.GET("/transactions", salesHandler.GetTransactions)
			salesRoutes.GET("/export", salesHandler.ExportCSV)
		}

		forecastRoutes := v1.Group("/forecast")
		{
			forecastRoutes.GET("/models", forecastHandler.GetModels)
			forecastRoutes.POST("/project", forecastHandler.Project)
			forecastRoutes.POST("/snapshots", forecastHandler.CreateSnapshot)
			forecastRoutes.GET("/snapshots", forecastHandler.ListSnapshots)
			forecastRoutes.GET("/snapshots/:id", forecastHandler.GetSnapshot)
			forecastRoutes.DELETE("/snapshots/:id", forecastHandler.DeleteSnapshot)
		}
	}
}
