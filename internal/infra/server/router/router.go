// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	teamController        *controller.TeamController
	bookController        *controller.BookController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	adminController       *controller.AdminController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	teamController *controller.TeamController,
	bookController *controller.BookController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	adminController *controller.AdminController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		teamController:        teamController,
		bookController:        bookController,
		accountController:     accountController,
		categoryController:    categoryController,
		transactionController: transactionController,
		adminController:       adminController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}

		// Team routes (require authentication)
		teams := v1.Group("/teams")
		teams.Use(r.authMiddleware.Authenticate())
		{
			teams.POST("", r.teamController.Create)
			teams.GET("", r.teamController.List)
			teams.GET("/:id", r.teamController.Get)
			teams.PUT("/:id", r.teamController.Update)
			teams.DELETE("/:id", r.teamController.SoftDelete)
			teams.POST("/:id/restore", r.teamController.Restore)
			teams.DELETE("/:id/purge", r.teamController.Purge)

			// Membership routes
			teams.GET("/:id/members", r.teamController.ListMembers)
			teams.POST("/:id/members", r.teamController.AddMember)
			teams.PATCH("/:id/members/:memberId", r.teamController.ChangeMemberRole)
			teams.DELETE("/:id/members/:memberId", r.teamController.RemoveMember)
			teams.POST("/:id/leave", r.teamController.Leave)
			teams.POST("/:id/invites", r.teamController.Invite)

			// Books nested under their owning team
			teams.POST("/:id/books", r.bookController.Create)
			teams.GET("/:id/books", r.bookController.List)
		}

		// Invite acceptance route (separate path, token carried in the body)
		invites := v1.Group("/invites")
		invites.Use(r.authMiddleware.Authenticate())
		{
			invites.POST("/accept", r.teamController.AcceptInvite)
		}

		// Book routes (require authentication)
		books := v1.Group("/books")
		books.Use(r.authMiddleware.Authenticate())
		{
			books.GET("/:id", r.bookController.Get)
			books.PUT("/:id", r.bookController.Update)
			books.DELETE("/:id", r.bookController.SoftDelete)
			books.POST("/:id/restore", r.bookController.Restore)
			books.DELETE("/:id/purge", r.bookController.Purge)

			// Accounts and categories nested under their owning book
			books.POST("/:id/accounts", r.accountController.Create)
			books.GET("/:id/accounts", r.accountController.List)
			books.POST("/:id/categories", r.categoryController.Create)
			books.GET("/:id/categories", r.categoryController.List)
		}

		// Account routes (require authentication)
		accounts := v1.Group("/accounts")
		accounts.Use(r.authMiddleware.Authenticate())
		{
			accounts.GET("/:id", r.accountController.Get)
			accounts.PUT("/:id", r.accountController.Update)
			accounts.DELETE("/:id", r.accountController.Delete)
			accounts.GET("/:id/balance", r.accountController.GetBalance)

			// Transactions nested under their owning account
			accounts.POST("/:id/transactions", r.transactionController.Create)
			accounts.GET("/:id/transactions", r.transactionController.List)
		}

		// Category routes (require authentication)
		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.PUT("/:id", r.categoryController.Update)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		// Transaction routes (require authentication)
		transactions := v1.Group("/transactions")
		transactions.Use(r.authMiddleware.Authenticate())
		{
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		// Superadmin routes (require authentication; the use cases enforce
		// the superadmin check)
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		{
			admin.GET("/teams", r.adminController.ListTeams)
			admin.GET("/books", r.adminController.ListBooks)
			admin.GET("/users", r.adminController.ListUsers)
			admin.PATCH("/users/:id/status", r.adminController.SetUserStatus)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
