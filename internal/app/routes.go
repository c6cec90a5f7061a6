package app

import (
	"github.com/ananyapurwar/ALGOTRACK/internal/auth"
	"github.com/ananyapurwar/ALGOTRACK/internal/config"
	"github.com/ananyapurwar/ALGOTRACK/internal/handlers"
	"github.com/ananyapurwar/ALGOTRACK/internal/repo"
	"github.com/ananyapurwar/ALGOTRACK/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	adminHandler := handlers.NewAdminHandler(userSvc)

	registerAuthRoutes(r, sessionStore, authHandler)
	registerAdminRoutes(r, sessionStore, adminHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "AlgoTrack Auth API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(r *gin.Engine, sessions *auth.Store, h *handlers.AuthHandler) {
	api := r.Group("/api")
	api.POST("/login", h.Login)
	api.POST("/register", h.Register)
	api.GET("/user", h.CurrentUser)
	api.POST("/update-handle", auth.RequireSession(sessions), h.UpdateHandle)

	// Logout lives outside /api: it redirects rather than answering JSON.
	r.GET("/logout", h.Logout)
}

func registerAdminRoutes(r *gin.Engine, sessions *auth.Store, h *handlers.AdminHandler) {
	admin := r.Group("/api/admin", auth.RequireAdmin(sessions))
	admin.GET("/users", h.ListUsers)
	admin.GET("/user-credentials", h.ListUserCredentials)
}
