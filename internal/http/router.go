package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	deps := ControllerDeps{
		QueryTimeout: cfg.QueryTimeout,
		Auditor:      cfg.Auditor,
		Logger:       logger,
	}

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		deps.Observer = cfg.Metrics
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Health endpoints
	health := NewHealthController(cfg.DatabaseDriver, cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	books := NewBooksController(cfg.Books, deps)
	api.POST("/books", books.CreateBook)
	api.GET("/books", books.ListBooks)
	api.GET("/books/:id", books.GetBook)
	api.PUT("/books/:id", books.UpdateBook)
	api.DELETE("/books/:id", books.DeleteBook)

	members := NewMembersController(cfg.Members, deps)
	api.POST("/members", members.CreateMember)
	api.GET("/members", members.ListMembers)
	api.GET("/members/:id", members.GetMember)
	api.PUT("/members/:id", members.UpdateMember)
	api.DELETE("/members/:id", members.DeleteMember)

	staff := NewStaffController(cfg.Staff, deps)
	api.POST("/staff", staff.CreateStaff)
	api.GET("/staff", staff.ListStaff)
	api.GET("/staff/:id", staff.GetStaff)
	api.PUT("/staff/:id", staff.UpdateStaff)
	api.DELETE("/staff/:id", staff.DeleteStaff)

	if cfg.AuditEvents != nil {
		auditController := NewAuditController(cfg.AuditEvents, deps)
		api.GET("/audit", auditController.ListEvents)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || containsWildcard(origins) {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
