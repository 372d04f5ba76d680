package router

import (
	"wallet-import/internal/config"
	"wallet-import/internal/cross"
	"wallet-import/internal/handler"
	"wallet-import/internal/middleware"
	"wallet-import/internal/reconcile"
	"wallet-import/internal/repository"
	"wallet-import/internal/service"
	"wallet-import/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	tasks *asynq.Client,
	cfg *config.Config,
	logger *logrus.Logger,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	sessionStore := repository.NewSessionStore(redis, cfg.ImportSessionTTL)
	importStore := repository.NewImportStore(db)

	// Initialize services
	support := cross.NewSupport(cfg.SupportedCurrencies)
	reconciler := reconcile.NewReconciler(cross.AccountDataToAccount, support.SupportsExistingAccount, logger)

	var enqueuer service.TaskEnqueuer
	if tasks != nil {
		enqueuer = tasks
	}

	authService := service.NewAuthService(userRepo, cfg)
	excelService := service.NewExcelService()
	importService := service.NewImportService(accountRepo, sessionStore, importStore, reconciler, enqueuer, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountRepo, excelService, cfg)
	importHandler := handler.NewImportHandler(importService, excelService, redis, cfg)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	router.Get("/currencies", func(c *fiber.Ctx) error {
		return utils.SuccessResponse(c, "Currencies retrieved successfully", cross.Currencies())
	})

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/settings", settingsHandler.GetSettings)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.Get("/", accountHandler.GetAccounts)
	accounts.Get("/export", accountHandler.ExportAccounts)
	accounts.Get("/:id", accountHandler.GetAccount)

	// Import review routes
	imports := protected.Group("/imports")
	imports.Post("/", importHandler.OpenImport)
	imports.Get("/:code", importHandler.GetImport)
	imports.Get("/:code/status", importHandler.GetSyncStatus)
	imports.Get("/:code/skipped-report", importHandler.DownloadSkippedReport)
	imports.Put("/:code/accounts/:id", importHandler.ToggleAccount)
	imports.Put("/:code/settings", importHandler.SetImportSettings)
	imports.Post("/:code/commit", importHandler.CommitImport)
	imports.Delete("/:code", importHandler.CancelImport)
}
