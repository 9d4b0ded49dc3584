// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/backoffice/backend/config"
	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/infra/dependency"
	"github.com/backoffice/backend/internal/integration/adapters"
	"github.com/backoffice/backend/internal/integration/persistence/model"
	"github.com/backoffice/backend/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testEmailRecipient = "owner@example.com"
	emailsPath         = "/emails"
)

// suite holds resources shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time
	emailAPI *mock.ApiMock
	server   *httptest.Server
	tokens   adapter.TokenService
}

var shared *suite

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db: mock.NewDb(map[string]any{
				"users":           &model.UserModel{},
				"quarters":        &model.QuarterModel{},
				"quarter_targets": &model.TargetModel{},
				"invoices":        &model.InvoiceModel{},
				"expenses":        &model.ExpenseModel{},
				"salary_payments": &model.SalaryPaymentModel{},
				"clients":         &model.ClientModel{},
			}),
			redis:    mock.NewRedis(),
			timeMock: mock.NewTime(),
			emailAPI: mock.NewApiServer(),
		}
		s.emailAPI.Start()

		cfg := testConfig(s.emailAPI.GetUrl())
		injector, err := dependency.NewInjector(cfg, s.db.DbConn, s.redis,
			dependency.WithClock(s.timeMock),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}

		s.tokens = adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, s.timeMock)
		s.server = httptest.NewServer(injector.Router.Setup("test"))
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared != nil && shared.server != nil {
			shared.server.Close()
		}
	})
}

func testConfig(emailURL string) *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.RateLimiting = true
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = emailURL
	cfg.Email.ClosingRecipients = []string{testEmailRecipient}
	cfg.Email.MaxAttempts = 2
	cfg.Email.RetryDelay = 10 * time.Millisecond
	cfg.Events.AMQPURL = ""
	cfg.Finance.ReportingCurrency = "USD"
	cfg.Finance.LoginRateLimit = 5
	cfg.Finance.LoginRateWindow = time.Minute
	cfg.Finance.CloseRateLimit = 5
	cfg.Finance.CloseRateWindow = time.Minute
	return cfg
}

// testContext holds the state of one scenario.
type testContext struct {
	*suite
	client      *http.Client
	headers     map[string]string
	accessToken string
	response    *response
	lastID      uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// User setup steps
	ctx.Given(`^I am logged in as an? (owner|staff) "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)

	// Record setup steps
	ctx.Given(`^the following invoices exist:$`, test.theFollowingInvoicesExist)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)
	ctx.Given(`^the following salary payments exist:$`, test.theFollowingSalaryPaymentsExist)
	ctx.Given(`^the following clients exist:$`, test.theFollowingClientsExist)
	ctx.Given(`^the email service fails with status (\d+)$`, test.theEmailServiceFailsWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps, usable as Given setup too
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// State assertion steps
	ctx.Then(`^the quarter "([^"]*)" should be "([^"]*)"$`, test.theQuarterShouldBe)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^email (\d+) should be sent to "([^"]*)" with subject "([^"]*)"$`, test.emailShouldBeSentToWithSubject)
}

func (t *testContext) before() error {
	if shared == nil {
		return fmt.Errorf("test suite was not initialized")
	}
	t.suite = shared
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.lastID = uuid.Nil

	t.timeMock.SetCurrentTime(time.Now())
	t.emailAPI.ClearResponses(http.MethodPost, emailsPath)
	t.emailAPI.SetResponse(-1, http.MethodPost, emailsPath, http.StatusOK, map[string]any{"id": "email-1"})

	if err := mock.ClearRedis(t.redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return t.db.ClearDB()
}
