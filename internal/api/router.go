package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
	"github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/oauth"
	"github.com/inkwell/blog-platform/pkg/logger"
)

// Deps bundles everything the router needs. Services are constructed in
// main; the router only wires them to routes.
type Deps struct {
	Auth       ports.AuthService
	Posts      ports.PostService
	Categories ports.CategoryService
	Contacts   ports.ContactService
	Admin      ports.AdminService
	Broker     ports.Broker

	Tickets     *redis.TicketStore
	Providers   []oauth.Provider
	FrontendURL string

	Mongo *mongo.Database
	Redis *goredis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("blog"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	categoryHandler := handler.NewCategoryHandler(deps.Categories)
	contactHandler := handler.NewContactHandler(deps.Contacts)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	uploadHandler := handler.NewUploadHandler(deps.Posts)
	oauthHandler := handler.NewOAuthHandler(deps.Auth, deps.Tickets, deps.FrontendURL, deps.Providers...)
	subHandler := handler.NewSubscriptionHandler(deps.Broker)

	authGate := middleware.Auth(deps.Auth)
	moderators := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Mongo, deps.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/v1")

	// --- Identity ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/activate", authHandler.Activate)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)

	session := api.Group("", authGate)
	session.POST("/auth/logout", authHandler.Logout)
	session.GET("/me", authHandler.Me)
	session.PUT("/me", authHandler.UpdateInfo)
	session.PUT("/me/password", authHandler.UpdatePassword)
	session.POST("/me/profile-pic", authHandler.UploadProfilePic)

	// --- Social sign-on ---
	api.GET("/passport/:provider", oauthHandler.Start)
	api.GET("/passport/:provider/callback", oauthHandler.Callback)
	api.GET("/passport/success", oauthHandler.Success)
	api.GET("/passport/failure", oauthHandler.Failure)

	// --- Posts and categories ---
	api.GET("/posts", postHandler.List)
	api.GET("/posts/page/:page", postHandler.Page)
	api.GET("/posts/:id", postHandler.Get)
	api.GET("/posts/category/:name", postHandler.ByCategory)
	api.GET("/categories", categoryHandler.List)

	session.GET("/my-posts", postHandler.Mine)
	session.POST("/posts", postHandler.Create)
	session.PUT("/posts/:id", postHandler.Update)
	session.DELETE("/posts/:id", postHandler.Delete)
	session.POST("/posts/delete-many", postHandler.DeleteMany)
	session.POST("/categories", categoryHandler.Create, moderators)

	// --- Editor uploads ---
	session.POST("/upload-file", uploadHandler.File)
	session.POST("/fetch-url", uploadHandler.FetchURL)

	// --- Contact ---
	api.POST("/contact", contactHandler.Submit)

	// --- Moderation ---
	admin := api.Group("/admin", authGate, moderators)
	admin.POST("/users/search", adminHandler.Users)
	admin.POST("/contacts/search", adminHandler.Contacts)
	admin.PUT("/users/:id", adminHandler.UpdateUser)

	// --- Subscriptions ---
	e.GET("/ws/:topic", subHandler.Subscribe)

	return e
}
