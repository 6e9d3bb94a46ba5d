package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/cellmap-backend-go/internal/config"
	"github.com/jengzang/cellmap-backend-go/internal/handler"
	"github.com/jengzang/cellmap-backend-go/internal/metrics"
	"github.com/jengzang/cellmap-backend-go/internal/middleware"
	"github.com/jengzang/cellmap-backend-go/internal/repository"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/internal/store"
)

// Dependencies carries everything the router wires together
type Dependencies struct {
	Config    *config.Config
	Sites     *store.Sites
	Sessions  *store.Sessions
	Loader    *service.Loader
	Snapshots *repository.SnapshotRepository
}

// SetupRouter configures the HTTP routes
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Cellmap Backend API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	siteHandler := handler.NewSiteHandler(service.NewSiteService(deps.Sites))
	sessionHandler := handler.NewSessionHandler(service.NewSessionService(deps.Sessions))
	statsHandler := handler.NewStatsHandler(service.NewAccuracyStatsService(deps.Sessions), deps.Loader)
	loadHandler := handler.NewLoadHandler(deps.Loader)
	exportHandler := handler.NewExportHandler(deps.Sites, deps.Sessions, deps.Loader)
	snapshotHandler := handler.NewSnapshotHandler(deps.Snapshots, deps.Sites, deps.Sessions)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(300, time.Minute))
	{
		api.POST("/files", loadHandler.Upload)

		sites := api.Group("/sites")
		{
			sites.GET("", siteHandler.GetSites)
			sites.GET("/coverage", siteHandler.GetCoverage)
			sites.GET("/:id", siteHandler.GetSiteByID)
			sites.GET("/:id/sectors", siteHandler.GetSectors)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", sessionHandler.GetSessions)
			sessions.GET("/:id", sessionHandler.GetSessionByID)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/accuracy", statsHandler.GetAccuracy)
			stats.GET("/files", statsHandler.GetFiles)
		}

		api.GET("/export", exportHandler.Export)

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(deps.Config.JWTSecret))
		{
			admin.POST("/snapshot", snapshotHandler.Save)
			admin.POST("/restore", snapshotHandler.Restore)
			admin.POST("/reset", loadHandler.Reset)
		}
	}

	return r
}
