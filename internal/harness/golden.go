package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cbc/internal/ir"
)

// Snapshot is the golden text of a result: the IR dump of a compiled
// program, or a single error line.
func Snapshot(result *Result) []byte {
	if result.Program != nil {
		return []byte(ir.Format(result.Program))
	}
	b := result.Build
	return []byte(fmt.Sprintf("error: %s: %s: %s\n", b.ErrorPass, b.ErrorCode, b.ErrorMessage))
}

// RunWithGolden runs the scenario and fails t on any mismatch. Scenarios
// with golden: true also compare their snapshot with
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	if scenario.Golden {
		AssertGolden(t, scenario.Name, result)
	}
	return nil
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
