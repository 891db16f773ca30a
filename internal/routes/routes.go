package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/agencyhub/internal/handlers"
	"github.com/01moynul/agencyhub/internal/logger"
	"github.com/01moynul/agencyhub/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries the router settings that do not live on Handlers.
type Options struct {
	CORSOrigins        []string
	LoginRatePerMinute int
	// UploadDir is served under /uploads when images are kept on local disk.
	UploadDir string
	Log       *zap.Logger
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(log), logger.Recovery(log))

	// --- CORS for the public site and the admin panel ---
	corsCfg := cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.CORSOrigins) == 0 {
		// cors refuses an empty allow list; fall back to any origin without credentials.
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	if h.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = h.MaxUploadBytes
	}

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	adminOnly := middleware.AdminMiddleware(h.Tokens, h.Admin.Email)
	limiter := middleware.NewLoginLimiter(opts.LoginRatePerMinute)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		// --- Admin Session ---
		api.POST("/admin/login", limiter.Middleware(), h.Login)

		// --- Price Plans ---
		price := api.Group("/price")
		{
			price.GET("/all", h.ListPrices)
			price.POST("/single", h.SinglePrice)
			price.POST("/add", adminOnly, h.AddPrice)
			price.POST("/remove", adminOnly, h.RemovePrice)
		}

		// --- Projects ---
		project := api.Group("/project")
		{
			project.POST("/all", h.ListProjects)
			project.POST("/single", h.SingleProject)
			project.POST("/add", adminOnly, h.AddProject)
			project.POST("/remove", adminOnly, h.RemoveProject)
		}

		// --- Queries ---
		query := api.Group("/query")
		{
			query.POST("/add", h.AddQuery)
			query.GET("/all", adminOnly, h.ListQueries)
			query.GET("/remove", adminOnly, h.RemoveQuery)
		}
	}

	return router
}
