//go:build integration

// Package integration runs the back-office API feature files against an
// in-process server backed by SQLite, miniredis and a stub email API.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/backoffice/backend/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "pretty"
	}

	opts := godog.Options{
		Format:   format,
		Paths:    []string{"features"},
		Output:   colors.Colored(os.Stdout),
		Strict:   true,
		TestingT: t,
		// Scenarios share one database and one clock
		Concurrency: 1,
		Tags:        os.Getenv("GODOG_TAGS"),
	}

	suite := godog.TestSuite{
		Name:                 "backoffice-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options:              &opts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}
