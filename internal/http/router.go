package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/config"
	"github.com/yaricp/simple-short-links/internal/http/handlers"
	"github.com/yaricp/simple-short-links/internal/http/middleware"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	UserRepo    *repo.UserRepo
	AuthService *services.AuthService
	LinkService *services.LinkService
	Logger      *slog.Logger
	RateLimiter *middleware.IPRateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	meHandler := handlers.NewMeHandler()
	userHandler := handlers.NewUserHandler(deps.UserRepo)
	linkHandler := handlers.NewLinkHandler(deps.LinkService)

	router.GET("/healthz", handlers.Health)

	public := router.Group("/api")
	if deps.RateLimiter != nil {
		public.Use(deps.RateLimiter.Middleware())
	}
	{
		public.POST("/sign-up", authHandler.SignUp)
		public.POST("/token", authHandler.Token)
	}

	protected := router.Group("/api")
	protected.Use(middleware.Auth(deps.AuthService))
	{
		protected.GET("/users/me", meHandler.GetMe)
		protected.DELETE("/users/:id", userHandler.Delete)
		protected.GET("/links", linkHandler.List)
		protected.POST("/links", linkHandler.Create)
		protected.GET("/link/:id", linkHandler.Get)
		protected.PUT("/link/:id", linkHandler.Update)
		protected.DELETE("/link/:id", linkHandler.Delete)
	}

	// Catch-all short-code redirect, registered last so static routes win.
	router.GET("/:short_text", linkHandler.Redirect)

	return router
}
