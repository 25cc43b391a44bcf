package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/redcycle-go/test/bdd/steps"
	"github.com/andrescamacho/redcycle-go/test/helpers"
)

// TestFeatures runs the engine feature files. Set GODOG_TAGS to narrow the
// run, e.g. GODOG_TAGS=@redistribution.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "redcycle-engine",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/engine"},
			Tags:     os.Getenv("GODOG_TAGS"),
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("engine features failed")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeSessionScenario(sc)
}

func TestMain(m *testing.M) {
	// One in-memory database for every scenario; each scenario truncates it
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	if err := helpers.CloseSharedTestDB(); err != nil && code == 0 {
		code = 1
	}
	os.Exit(code)
}
