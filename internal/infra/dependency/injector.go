// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger-api/config"
	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/account"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/category"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger-api/internal/infra/cache"
	"github.com/finance-tracker/ledger-api/internal/infra/server/router"
	"github.com/finance-tracker/ledger-api/internal/integration/adapters"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService

	// MemoryRateLimitStore is set when no redis is available; its expired windows need periodic cleanup.
	MemoryRateLimitStore *adapters.MemoryRateLimitStore
}

// Option customizes the wiring.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used to resolve "today" for default date windows.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisConn may be nil, in which case rate limiting is kept in process.
func NewInjector(cfg *config.Config, db *gorm.DB, redisConn *cache.Redis, opts ...Option) *Injector {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create repositories
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var (
		rateLimitStore   adapter.RateLimitStore
		memoryStore      *adapters.MemoryRateLimitStore
		redisHealthCheck func() bool
	)
	if redisConn != nil {
		rateLimitStore = adapters.NewRedisRateLimitStore(redisConn.Client())
		redisHealthCheck = redisConn.HealthCheck
	} else {
		memoryStore = adapters.NewMemoryRateLimitStore()
		rateLimitStore = memoryStore
	}

	// Create summary use case
	getSummaryUseCase := summary.NewGetSummaryUseCase(transactionRepo, categoryRepo, summary.Settings{
		DefaultRangeDays: cfg.Summary.DefaultRangeDays,
		TopCategories:    cfg.Summary.TopCategories,
		Now:              o.now,
	})

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountsUseCase := account.NewDeleteAccountsUseCase(accountRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoriesUseCase := category.NewDeleteCategoriesUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, cfg.Summary.DefaultRangeDays).WithClock(o.now)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo)
	bulkCreateTransactionsUseCase := transaction.NewBulkCreateTransactionsUseCase(transactionRepo, accountRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo)
	deleteTransactionsUseCase := transaction.NewDeleteTransactionsUseCase(transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthCheck)

	summaryController := controller.NewSummaryController(getSummaryUseCase)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		getAccountUseCase,
		createAccountUseCase,
		updateAccountUseCase,
		deleteAccountsUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoriesUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		bulkCreateTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionsUseCase,
	)

	// Create middleware
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		summaryController,
		accountController,
		categoryController,
		transactionController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:               cfg,
		DB:                   db,
		Router:               r,
		TokenService:         tokenService,
		MemoryRateLimitStore: memoryStore,
	}
}
