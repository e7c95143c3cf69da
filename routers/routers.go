package routers

import (
	"context"
	"net/http"
	"time"

	"AdminBackend/config"
	"AdminBackend/handlers"
	"AdminBackend/jwt"
	"AdminBackend/logger"
	"AdminBackend/middleware"
	"AdminBackend/models"
	"AdminBackend/repository"
	"AdminBackend/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uploadsPath = "/uploads"

type Handlers struct {
	Auth       *handlers.AuthHandler
	Categories *handlers.CategoryHandler
	Suppliers  *handlers.SupplierHandler
	Products   *handlers.ProductHandler
	Images     *handlers.ImageHandler
}

type Options struct {
	Verifier     middleware.TokenVerifier
	CookieName   string
	LoginLimiter middleware.Counter
	LoginLimit   int64
	LoginWindow  time.Duration
	UploadsDir   string
	// Health reports whether the backing services answer. Nil means always healthy.
	Health func(ctx context.Context) error
}

// SetupRouters wires repositories over db and returns the full route table.
// rdb may be nil, which disables login rate limiting.
func SetupRouters(db *gorm.DB, rdb *redis.Client, tokens *jwt.Manager, cfg config.Config) *gin.Engine {
	sessions := repository.NewSessionRepository(db)
	tokens.WithSessions(sessions)
	v := validation.New()

	h := Handlers{
		Auth: handlers.NewAuthHandler(
			repository.NewUserRepository(db),
			sessions,
			tokens,
			v,
			handlers.SessionCookie{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure},
		),
		Categories: handlers.NewCategoryHandler(repository.NewCategoryRepository(db), v),
		Suppliers:  handlers.NewSupplierHandler(repository.NewSupplierRepository(db), v),
		Products:   handlers.NewProductHandler(repository.NewProductRepository(db), v),
		Images:     handlers.NewImageHandler(cfg.Server.UploadsDir, uploadsPath),
	}

	opts := Options{
		Verifier:    tokens,
		CookieName:  cfg.Auth.CookieName,
		LoginLimit:  cfg.Auth.LoginLimit,
		LoginWindow: cfg.Auth.LoginWindow,
		UploadsDir:  cfg.Server.UploadsDir,
		Health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		opts.LoginLimiter = middleware.NewRedisCounter(rdb, "rate_limit:login:")
	}

	return NewRouter(h, opts)
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization, X-Request-ID")
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Log.Warn("set trusted proxies", zap.Error(err))
	}

	if opts.UploadsDir != "" {
		router.Static(uploadsPath, opts.UploadsDir)
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/healthz", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health(c.Request.Context()); err != nil {
				logger.Error(c.Request.Context(), "health check", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.Authenticate(opts.Verifier, opts.CookieName))
	{
		auth := api.Group("/auth")
		auth.POST("/login", middleware.RateLimit(opts.LoginLimiter, opts.LoginLimit, opts.LoginWindow), h.Auth.Login)
		auth.POST("/logout", middleware.RequireLogin(), h.Auth.Logout)

		// Any signed-in caller, scoped to their own products.
		loginRequired := api.Group("")
		loginRequired.Use(middleware.RequireLogin())
		{
			loginRequired.GET("/products", h.Products.List)
			loginRequired.GET("/products/:id", h.Products.Get)
		}

		// Admin only.
		adminRequired := api.Group("")
		adminRequired.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminRequired.GET("/category", h.Categories.List)
			adminRequired.POST("/category", h.Categories.Create)
			adminRequired.GET("/category/:id", h.Categories.Get)
			adminRequired.PUT("/category/:id", h.Categories.Update)
			adminRequired.DELETE("/category/:id", h.Categories.Delete)

			adminRequired.GET("/suppliers", h.Suppliers.List)
			adminRequired.POST("/suppliers", h.Suppliers.Create)
			adminRequired.GET("/suppliers/:id", h.Suppliers.Get)
			adminRequired.PUT("/suppliers/:id", h.Suppliers.Update)
			adminRequired.DELETE("/suppliers/:id", h.Suppliers.Delete)

			adminRequired.POST("/products", h.Products.Create)
			adminRequired.POST("/products/images", h.Images.Upload)
			adminRequired.PUT("/products/:id", h.Products.Update)
			adminRequired.DELETE("/products/:id", h.Products.Delete)
		}
	}

	return router
}
