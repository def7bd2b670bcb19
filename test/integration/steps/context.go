// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/backend/config"
	"github.com/ledgerbook/backend/internal/infra/dependency"
	"github.com/ledgerbook/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-integration-tests"

var serverOnce sync.Once
var server *httptest.Server
var testDb *mock.Db

// testContext holds the per-scenario state: the pending request being built,
// the last response, the current session tokens and any saved placeholders.
type testContext struct {
	client       *http.Client
	headers      map[string]string
	response     *http.Response
	responseBody []byte

	accessToken  string
	refreshToken string

	// vars maps placeholder names to values saved from earlier responses.
	// Paths and bodies may reference them as {name}.
	vars map[string]string
}

type contextKey struct{}

func getTestContext(ctx context.Context) *testContext {
	tc, _ := ctx.Value(contextKey{}).(*testContext)
	return tc
}

func setTestContext(ctx context.Context, tc *testContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// startServer boots the full application once: real router, real use cases,
// SQLite instead of Postgres and miniredis instead of Redis.
func startServer() {
	serverOnce.Do(func() {
		os.Setenv("ENV", "test")
		os.Setenv("JWT_SECRET", testJWTSecret)

		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		testDb = mock.NewDb()
		injector := dependency.NewInjector(cfg, testDb.Conn(), mock.NewRedis())
		server = httptest.NewServer(injector.Router.Setup("test"))
	})
}

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(startServer)
	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
	})
}

// InitializeScenario wires the step definitions and resets state between scenarios.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()

		if err := testDb.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}

		tc := &testContext{
			client:  server.Client(),
			headers: make(map[string]string),
			vars:    make(map[string]string),
		}
		return setTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
}

// substitute replaces {name} placeholders with saved values. The current
// session tokens are always available as {accessToken} and {refreshToken}.
func (tc *testContext) substitute(s string) string {
	s = strings.ReplaceAll(s, "{accessToken}", tc.accessToken)
	s = strings.ReplaceAll(s, "{refreshToken}", tc.refreshToken)
	for name, value := range tc.vars {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}
