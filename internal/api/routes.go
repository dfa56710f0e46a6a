package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/codyseavey/mtga-ko/internal/api/handlers"
	"github.com/codyseavey/mtga-ko/internal/config"
	"github.com/codyseavey/mtga-ko/internal/services"
)

func SetupRouter(cfg *config.ServerConfig, lookupService *services.LookupService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), metricsMiddleware())

	// CORS configuration - allow origins from environment, "*" for any
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	cardHandler := handlers.NewCardHandler(lookupService)

	lookup := router.Group("/")
	if cfg.RateLimitRPS > 0 {
		lookup.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))
	}
	{
		lookup.GET("/translate", cardHandler.Translate)
		lookup.GET("/api/cards/translate", cardHandler.Translate)
	}

	if cfg.EnableReload {
		router.POST("/admin/reload", cardHandler.Reload)
	}

	// Health check
	router.GET("/health", cardHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
