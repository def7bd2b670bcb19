// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerbook/backend/config"
	"github.com/ledgerbook/backend/internal/application/adapter"
	"github.com/ledgerbook/backend/internal/application/authz"
	"github.com/ledgerbook/backend/internal/application/usecase/account"
	"github.com/ledgerbook/backend/internal/application/usecase/auth"
	"github.com/ledgerbook/backend/internal/application/usecase/book"
	"github.com/ledgerbook/backend/internal/application/usecase/category"
	"github.com/ledgerbook/backend/internal/application/usecase/team"
	"github.com/ledgerbook/backend/internal/application/usecase/transaction"
	"github.com/ledgerbook/backend/internal/application/usecase/user"
	"github.com/ledgerbook/backend/internal/infra/server/router"
	"github.com/ledgerbook/backend/internal/integration/adapters"
	"github.com/ledgerbook/backend/internal/integration/email"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerbook/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	teamRepo := persistence.NewTeamRepository(db)
	bookRepo := persistence.NewBookRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, invitation emails will not be delivered")
		emailSender = email.NewMockEmailSender()
	}

	// Create the permission gate
	gate := authz.NewGate(authz.NewRoleResolver(teamRepo))

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, userRepo)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create team use cases
	createTeamUseCase := team.NewCreateTeamUseCase(teamRepo, userRepo)
	listTeamsUseCase := team.NewListTeamsUseCase(teamRepo)
	getTeamUseCase := team.NewGetTeamUseCase(teamRepo, gate)
	updateTeamUseCase := team.NewUpdateTeamUseCase(teamRepo, gate)
	softDeleteTeamUseCase := team.NewSoftDeleteTeamUseCase(teamRepo, gate)
	restoreTeamUseCase := team.NewRestoreTeamUseCase(teamRepo)
	purgeTeamUseCase := team.NewPurgeTeamUseCase(teamRepo)
	addMemberUseCase := team.NewAddMemberUseCase(teamRepo, userRepo, gate)
	listMembersUseCase := team.NewListMembersUseCase(teamRepo, gate)
	changeRoleUseCase := team.NewChangeMemberRoleUseCase(teamRepo, gate)
	removeMemberUseCase := team.NewRemoveMemberUseCase(teamRepo, gate)
	leaveTeamUseCase := team.NewLeaveTeamUseCase(teamRepo)
	inviteMemberUseCase := team.NewInviteMemberUseCase(teamRepo, userRepo, emailSender, gate)
	acceptInviteUseCase := team.NewAcceptInviteUseCase(teamRepo, userRepo)
	listAllTeamsUseCase := team.NewListAllTeamsUseCase(teamRepo)

	// Create book use cases
	createBookUseCase := book.NewCreateBookUseCase(bookRepo, gate)
	listBooksUseCase := book.NewListBooksUseCase(bookRepo, gate)
	getBookUseCase := book.NewGetBookUseCase(bookRepo, gate)
	updateBookUseCase := book.NewUpdateBookUseCase(bookRepo, gate)
	softDeleteBookUseCase := book.NewSoftDeleteBookUseCase(bookRepo, gate)
	restoreBookUseCase := book.NewRestoreBookUseCase(bookRepo, teamRepo)
	purgeBookUseCase := book.NewPurgeBookUseCase(bookRepo)
	listAllBooksUseCase := book.NewListAllBooksUseCase(bookRepo)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo, bookRepo, gate)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo, bookRepo, gate)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo, bookRepo, gate)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo, bookRepo, gate)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, bookRepo, gate)
	getBalanceUseCase := account.NewGetBalanceUseCase(accountRepo, bookRepo, transactionRepo, gate)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, bookRepo, gate)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, bookRepo, gate)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, bookRepo, gate)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, bookRepo, gate)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, bookRepo, gate)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, accountRepo, bookRepo, gate)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, bookRepo, gate)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo, bookRepo, gate)

	// Create user administration use cases
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	setUserStatusUseCase := user.NewSetUserStatusUseCase(userRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	teamController := controller.NewTeamController(
		createTeamUseCase,
		listTeamsUseCase,
		getTeamUseCase,
		updateTeamUseCase,
		softDeleteTeamUseCase,
		restoreTeamUseCase,
		purgeTeamUseCase,
		addMemberUseCase,
		listMembersUseCase,
		changeRoleUseCase,
		removeMemberUseCase,
		leaveTeamUseCase,
		inviteMemberUseCase,
		acceptInviteUseCase,
	)

	bookController := controller.NewBookController(
		createBookUseCase,
		listBooksUseCase,
		getBookUseCase,
		updateBookUseCase,
		softDeleteBookUseCase,
		restoreBookUseCase,
		purgeBookUseCase,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		getAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
		getBalanceUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	adminController := controller.NewAdminController(
		listAllTeamsUseCase,
		listAllBooksUseCase,
		listUsersUseCase,
		setUserStatusUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		teamController,
		bookController,
		accountController,
		categoryController,
		transactionController,
		adminController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
