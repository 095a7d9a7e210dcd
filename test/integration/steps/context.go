//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/config"
	"github.com/finance-tracker/ledger-api/internal/application/adapter"
	"github.com/finance-tracker/ledger-api/internal/infra/dependency"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger-api/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// Shared across scenarios; the server is started once.
var (
	serverInit   sync.Once
	testServer   *httptest.Server
	tokenService adapter.TokenService
	testDB       *mock.Db
	testRedis    *mock.Redis
	timeMock     = mock.NewTime()
)

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time

	accessToken   string
	useCookie     bool
	users         map[string]uuid.UUID
	currentUserID uuid.UUID
	accounts      map[string]uuid.UUID
	categories    map[string]uuid.UUID
	lastID        uuid.UUID
	createdIDs    []uuid.UUID
}

type response struct {
	status int
	body   any
}

func newTestContext() *testContext {
	testDB = mock.NewDb(map[string]any{
		"transactions": &model.TransactionModel{},
		"accounts":     &model.AccountModel{},
		"categories":   &model.CategoryModel{},
	}, []string{"transactions", "accounts", "categories"})
	testRedis = mock.NewRedis()

	return &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       testDB,
		redis:    testRedis,
		timeMock: timeMock,
	}
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.useCookie = false
	t.users = make(map[string]uuid.UUID)
	t.currentUserID = uuid.Nil
	t.accounts = make(map[string]uuid.UUID)
	t.categories = make(map[string]uuid.UUID)
	t.lastID = uuid.Nil
	t.createdIDs = nil
	t.timeMock.Reset()

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return t.redis.Clear()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.AccessTokenExpiry = time.Hour
		cfg.RateLimit = config.RateLimitConfig{Requests: 1000, Window: time.Minute}
		cfg.Summary = config.SummaryConfig{DefaultRangeDays: 30, TopCategories: 5}

		injector := dependency.NewInjector(cfg, testDB.DbConn, testRedis.Conn, dependency.WithClock(timeMock.Now))
		tokenService = injector.TokenService

		testServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	t.uri = testServer.URL
}

// login issues a token for the alias, creating its user id on first use.
func (t *testContext) login(alias string) error {
	userID := t.userID(alias)

	token, err := tokenService.GenerateAccessToken(context.Background(), userID, alias+"@example.com")
	if err != nil {
		return err
	}
	t.accessToken = token
	t.currentUserID = userID
	return nil
}

func (t *testContext) userID(alias string) uuid.UUID {
	userID, ok := t.users[alias]
	if !ok {
		userID = uuid.New()
		t.users[alias] = userID
	}
	return userID
}

var namedPlaceholder = regexp.MustCompile(`\{\{(account|category):([^}]+)\}\}`)

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{id}}", t.lastID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())

	if strings.Contains(content, "{{created_ids}}") {
		ids := make([]string, len(t.createdIDs))
		for i, id := range t.createdIDs {
			ids[i] = fmt.Sprintf(`"%s"`, id.String())
		}
		content = strings.ReplaceAll(content, "{{created_ids}}", "["+strings.Join(ids, ", ")+"]")
	}

	return namedPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := namedPlaceholder.FindStringSubmatch(match)
		lookup := t.accounts
		if parts[1] == "category" {
			lookup = t.categories
		}
		if id, ok := lookup[parts[2]]; ok {
			return id.String()
		}
		// Unknown names become random ids so ownership checks can be exercised.
		return uuid.NewString()
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		if t.useCookie {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: t.accessToken})
		} else {
			req.Header.Set("Authorization", "Bearer "+t.accessToken)
		}
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureCreated(method, path, responseBody["data"])

	return nil
}

// captureCreated remembers ids and names returned by create endpoints.
func (t *testContext) captureCreated(method, path string, data any) {
	if method != http.MethodPost || t.response.status != http.StatusCreated {
		return
	}

	items, ok := data.([]any)
	if !ok {
		items = []any{data}
	}

	for _, item := range items {
		object, ok := item.(map[string]any)
		if !ok {
			continue
		}
		idStr, _ := object["id"].(string)
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		t.lastID = id
		t.createdIDs = append(t.createdIDs, id)

		name, _ := object["name"].(string)
		switch {
		case strings.HasPrefix(path, "/api/v1/accounts") && name != "":
			t.accounts[name] = id
		case strings.HasPrefix(path, "/api/v1/categories") && name != "":
			t.categories[name] = id
		}
	}
}
