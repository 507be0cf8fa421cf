// Package router wires middleware and handlers into the gin engine.
package router

import (
	"github.com/busstore/backend/internal/infrastructure/auth"
	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/busstore/backend/internal/infrastructure/logger"
	"github.com/busstore/backend/internal/interfaces/http/handler"
	"github.com/busstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/busstore/backend/docs"
)

// Dependencies holds everything the router needs to build the engine
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist

	System   *handler.SystemHandler
	Products *handler.ProductHandler
	Checkout *handler.CheckoutHandler
	Payments *handler.PaymentHandler
	Sales    *handler.SaleHandler
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Postal   *handler.PostalHandler
}

// New builds the gin engine with all middleware and routes registered
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	}
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", deps.System.Health)
	engine.GET("/ready", deps.System.Ready)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group("/api/v1")
	registerPublicRoutes(api, deps)
	registerAuthedRoutes(api, deps)
	registerAdminRoutes(api, deps)

	return engine
}

// registerPublicRoutes mounts everything a guest can reach: the
// storefront catalog, checkout, CEP lookup and account creation.
func registerPublicRoutes(api *gin.RouterGroup, deps Dependencies) {
	api.GET("/system/info", deps.System.Info)

	authGroup := api.Group("/auth")
	if deps.Config.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.AuthRateLimitRequests,
			deps.Config.HTTP.AuthRateLimitWindow,
		)
		authGroup.Use(middleware.RateLimit(limiter))
	}
	authGroup.POST("/signup", deps.Auth.Signup)
	authGroup.POST("/login", deps.Auth.Login)
	authGroup.POST("/refresh", deps.Auth.Refresh)

	api.GET("/products", deps.Products.ListStorefront)
	api.GET("/products/:id", deps.Products.GetStorefront)

	// Checkout is open to guests: the cart lives in the client and the
	// buyer is identified by the email in the payload.
	api.POST("/checkout/check-stock", deps.Checkout.CheckStock)
	api.POST("/checkout", deps.Checkout.Checkout)

	api.POST("/payment/process", deps.Payments.Process)

	api.GET("/postal/cep/:cep", deps.Postal.ResolveCEP)
}

// registerAuthedRoutes mounts routes that need a valid access token
func registerAuthedRoutes(api *gin.RouterGroup, deps Dependencies) {
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.Blacklist,
		Logger:         deps.Logger,
	}))

	authed.POST("/auth/logout", deps.Auth.Logout)
	authed.GET("/auth/me", deps.Auth.Me)
	authed.POST("/auth/change-password", deps.Auth.ChangePassword)

	authed.GET("/users/me", deps.Users.GetProfile)
	authed.PUT("/users/me", deps.Users.UpdateProfile)
	authed.DELETE("/users/me", deps.Users.Deactivate)

	authed.GET("/orders", deps.Sales.ListMine)
	authed.GET("/orders/:id", deps.Sales.GetMine)
}

// registerAdminRoutes mounts the admin surface, gated on the configured
// store administrator email.
func registerAdminRoutes(api *gin.RouterGroup, deps Dependencies) {
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.Blacklist,
		Logger:         deps.Logger,
	}))
	admin.Use(middleware.RequireAdmin(deps.Config.Store))

	products := admin.Group("/products")
	products.POST("", deps.Products.Create)
	products.GET("", deps.Products.List)
	products.GET("/low-stock", deps.Products.ListLowStock)
	products.GET("/:id", deps.Products.Get)
	products.PUT("/:id", deps.Products.Update)
	products.DELETE("/:id", deps.Products.Delete)
	products.POST("/:id/variations", deps.Products.AddVariation)
	products.DELETE("/:id/variations", deps.Products.RemoveVariation)
	products.POST("/:id/restock", deps.Products.Restock)
	products.POST("/:id/activate", deps.Products.Activate)
	products.POST("/:id/deactivate", deps.Products.Deactivate)

	sales := admin.Group("/sales")
	sales.GET("", deps.Sales.List)
	sales.GET("/summary", deps.Sales.Summary)
	sales.GET("/number/:number", deps.Sales.GetByNumber)
	sales.GET("/:id", deps.Sales.Get)
	sales.POST("/:id/ship", deps.Sales.MarkShipped)
	sales.POST("/:id/deliver", deps.Sales.MarkDelivered)
	sales.POST("/:id/cancel", deps.Sales.Cancel)
}
