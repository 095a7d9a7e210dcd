package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/account"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/category"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger-api/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence/model"
)

type testServer struct {
	router       *gin.Engine
	db           *gorm.DB
	userID       uuid.UUID
	accounts     adapter.AccountRepository
	categories   adapter.CategoryRepository
	transactions adapter.TransactionRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := &testServer{
		db:           db,
		userID:       uuid.New(),
		accounts:     persistence.NewAccountRepository(db),
		categories:   persistence.NewCategoryRepository(db),
		transactions: persistence.NewTransactionRepository(db),
	}

	summaryController := NewSummaryController(summary.NewGetSummaryUseCase(s.transactions, s.categories, summary.Settings{
		DefaultRangeDays: summary.DefaultRangeDays,
		TopCategories:    summary.DefaultTopCategories,
	}))
	accountController := NewAccountController(
		account.NewListAccountsUseCase(s.accounts),
		account.NewGetAccountUseCase(s.accounts),
		account.NewCreateAccountUseCase(s.accounts),
		account.NewUpdateAccountUseCase(s.accounts),
		account.NewDeleteAccountsUseCase(s.accounts),
	)
	categoryController := NewCategoryController(
		category.NewListCategoriesUseCase(s.categories),
		category.NewGetCategoryUseCase(s.categories),
		category.NewCreateCategoryUseCase(s.categories),
		category.NewUpdateCategoryUseCase(s.categories),
		category.NewDeleteCategoriesUseCase(s.categories),
	)
	transactionController := NewTransactionController(
		transaction.NewListTransactionsUseCase(s.transactions, summary.DefaultRangeDays),
		transaction.NewGetTransactionUseCase(s.transactions),
		transaction.NewCreateTransactionUseCase(s.transactions, s.accounts, s.categories),
		transaction.NewBulkCreateTransactionsUseCase(s.transactions, s.accounts, s.categories),
		transaction.NewUpdateTransactionUseCase(s.transactions, s.accounts, s.categories),
		transaction.NewDeleteTransactionsUseCase(s.transactions),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			c.Set(string(middleware.UserIDKey), uuid.MustParse(raw))
		}
		c.Next()
	})
	api.GET("/summary", summaryController.Get)

	api.GET("/accounts", accountController.List)
	api.GET("/accounts/:id", accountController.Get)
	api.POST("/accounts", accountController.Create)
	api.PATCH("/accounts/:id", accountController.Update)
	api.DELETE("/accounts/:id", accountController.Delete)
	api.POST("/accounts/bulk-delete", accountController.BulkDelete)

	api.GET("/categories", categoryController.List)
	api.GET("/categories/:id", categoryController.Get)
	api.POST("/categories", categoryController.Create)
	api.PATCH("/categories/:id", categoryController.Update)
	api.DELETE("/categories/:id", categoryController.Delete)
	api.POST("/categories/bulk-delete", categoryController.BulkDelete)

	api.GET("/transactions", transactionController.List)
	api.GET("/transactions/:id", transactionController.Get)
	api.POST("/transactions", transactionController.Create)
	api.POST("/transactions/bulk-create", transactionController.BulkCreate)
	api.POST("/transactions/bulk-delete", transactionController.BulkDelete)
	api.PATCH("/transactions/:id", transactionController.Update)
	api.DELETE("/transactions/:id", transactionController.Delete)

	s.router = router
	return s
}

// do sends a request as the server's user. A nil body sends no body.
func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return s.doAs(t, s.userID, method, path, body)
}

func (s *testServer) doAs(t *testing.T, userID uuid.UUID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("X-Test-User", userID.String())
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedAccount(t *testing.T, userID uuid.UUID, name string) *entity.Account {
	t.Helper()
	a := entity.NewAccount(userID, name)
	if err := s.accounts.Create(context.Background(), a); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return a
}

func (s *testServer) seedCategory(t *testing.T, userID uuid.UUID, name string) *entity.Category {
	t.Helper()
	c := entity.NewCategory(userID, name)
	if err := s.categories.Create(context.Background(), c); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return c
}

func (s *testServer) seedTransaction(t *testing.T, accountID uuid.UUID, categoryID *uuid.UUID, day string, amount int64) *entity.Transaction {
	t.Helper()
	d, err := valueobject.ParseDate(day)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", day, err)
	}
	txn := entity.NewTransaction(accountID, categoryID, d, amount, "payee", nil)
	if err := s.transactions.Create(context.Background(), txn); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	// Keep created_at ordering deterministic for same-day rows.
	time.Sleep(time.Millisecond)
	return txn
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body %s: %v", w.Body.String(), err)
	}
	return resp.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body %s: %v", w.Body.String(), err)
	}
	return resp.Error, resp.Code
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

