//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger-api/internal/domain/entity"
	"github.com/finance-tracker/ledger-api/internal/domain/valueobject"
	"github.com/finance-tracker/ledger-api/internal/integration/persistence/model"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "ledger-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	test := newTestContext()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// Auth steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I authenticate with the session cookie$`, test.iAuthenticateWithTheSessionCookie)
	ctx.Given(`^the rate limit for my address is exhausted$`, test.theRateLimitForMyAddressIsExhausted)

	// Ledger setup steps
	ctx.Given(`^"([^"]*)" has an account named "([^"]*)"$`, test.userHasAnAccountNamed)
	ctx.Given(`^"([^"]*)" has a category named "([^"]*)"$`, test.userHasACategoryNamed)
	ctx.Given(`^the following transactions exist:$`, test.theFollowingTransactionsExist)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) todayIs(day string) error {
	date, err := valueobject.ParseDate(day)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(date.Add(12 * time.Hour))
	return nil
}

func (t *testContext) iAmLoggedInAs(alias string) error {
	return t.login(alias)
}

func (t *testContext) iAuthenticateWithTheSessionCookie() error {
	t.useCookie = true
	return nil
}

func (t *testContext) theRateLimitForMyAddressIsExhausted() error {
	return t.redis.Server.Set("ratelimit:127.0.0.1", "1000000")
}

func (t *testContext) userHasAnAccountNamed(alias, name string) error {
	account := entity.NewAccount(t.userID(alias), name)
	if err := t.db.DbConn.Create(model.AccountFromEntity(account)).Error; err != nil {
		return err
	}
	t.accounts[name] = account.ID
	return nil
}

func (t *testContext) userHasACategoryNamed(alias, name string) error {
	category := entity.NewCategory(t.userID(alias), name)
	if err := t.db.DbConn.Create(model.CategoryFromEntity(category)).Error; err != nil {
		return err
	}
	t.categories[name] = category.ID
	return nil
}

// theFollowingTransactionsExist expects the columns account, category, date, amount and payee.
// An empty category cell leaves the transaction uncategorized.
func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transaction table needs a header and at least one row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, required := range []string{"account", "category", "date", "amount", "payee"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("transaction table is missing column %q", required)
		}
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string { return row.Cells[columns[name]].Value }

		accountID, ok := t.accounts[cell("account")]
		if !ok {
			return fmt.Errorf("unknown account %q", cell("account"))
		}

		var categoryID *uuid.UUID
		if name := cell("category"); name != "" {
			id, ok := t.categories[name]
			if !ok {
				return fmt.Errorf("unknown category %q", name)
			}
			categoryID = &id
		}

		date, err := valueobject.ParseDate(cell("date"))
		if err != nil {
			return err
		}

		amount, err := strconv.ParseInt(cell("amount"), 10, 64)
		if err != nil {
			return fmt.Errorf("amount %q must be miliunits: %w", cell("amount"), err)
		}

		txn := entity.NewTransaction(accountID, categoryID, date, amount, cell("payee"), nil)
		if err := t.db.DbConn.Create(model.TransactionFromEntity(txn)).Error; err != nil {
			return err
		}
		t.lastID = txn.ID
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, found := getFieldValue(body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := formatValue(value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, found := getFieldValue(body, field); !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, found := getFieldValue(body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, quantity, len(items), items)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if m, ok := t.db.GetModel(table); ok {
		var count int64
		if err := t.db.DbConn.Model(m).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if m, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(m).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			if value == nil {
				query = query.Where(fmt.Sprintf("%s IS NULL", key))
				continue
			}
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

// getFieldValue walks a dot separated path; numeric segments index into lists.
func getFieldValue(object map[string]any, dotSeparatedField string) (any, bool) {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil, false
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil, false
		}
		field, ok = m[currentField]
		if !ok {
			return nil, false
		}
	}

	return field, true
}

// formatValue prints JSON numbers without exponents so miliunit amounts compare as written.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
