package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cbc/internal/diag"
)

// Scenario is one conformance test: a syntax tree and what compiling it
// must produce.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Tree is the path to the CUE or JSON syntax-tree document.
	// LoadScenario resolves it relative to the scenario file.
	Tree string `yaml:"tree"`

	// Expect is the required outcome.
	Expect Expect `yaml:"expect"`

	// Golden compares the IR dump (or error text) with
	// testdata/golden/<name>.golden.
	Golden bool `yaml:"golden,omitempty"`

	// Assertions check the lowered program. Only valid with expect.ok.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect is either ok: true or an error code.
type Expect struct {
	OK bool `yaml:"ok,omitempty"`

	// Error is a diag code such as UNDEFINED_NAME.
	Error string `yaml:"error,omitempty"`

	// Name is the offending identifier. Optional.
	Name string `yaml:"name,omitempty"`

	// Pass is the compiler pass that must report the error. Optional.
	Pass string `yaml:"pass,omitempty"`
}

// Assertion checks one property of the lowered program.
type Assertion struct {
	Type string `yaml:"type"`

	// Func names the function for the ir_* and count assertions.
	Func string `yaml:"func,omitempty"`

	// Line is the expected IR line (ir_contains).
	Line string `yaml:"line,omitempty"`

	// Lines is the expected IR subsequence (ir_order).
	Lines []string `yaml:"lines,omitempty"`

	// Target is the assigned variable (assign_count).
	Target string `yaml:"target,omitempty"`

	// Count is the expected number (assign_count, temp_count).
	Count int `yaml:"count"`

	// Names are the expected top-level names (root_names).
	Names []string `yaml:"names,omitempty"`
}

// Assertion type constants.
const (
	AssertIRContains  = "ir_contains"
	AssertIROrder     = "ir_order"
	AssertAssignCount = "assign_count"
	AssertTempCount   = "temp_count"
	AssertRootNames   = "root_names"
)

var knownCodes = map[diag.Code]bool{
	diag.ErrCodeUndefinedName:           true,
	diag.ErrCodeDuplicateDefinition:     true,
	diag.ErrCodeCyclicTypeDefinition:    true,
	diag.ErrCodeInvalidAssignmentTarget: true,
	diag.ErrCodeNotCallable:             true,
	diag.ErrCodeNotAConstant:            true,
	diag.ErrCodeUnresolvedEntity:        true,
	diag.ErrCodeUnsupported:             true,
}

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Tree != "" && !filepath.IsAbs(scenario.Tree) {
		scenario.Tree = filepath.Join(filepath.Dir(path), scenario.Tree)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml and *.yml file directly in dir, sorted by
// file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("scenario name %q used by both %s and %s", s.Name, prev, p)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Tree == "" {
		return fmt.Errorf("tree is required")
	}
	if _, err := os.Stat(s.Tree); os.IsNotExist(err) {
		return fmt.Errorf("tree file not found: %s", s.Tree)
	}

	switch {
	case s.Expect.OK && s.Expect.Error != "":
		return fmt.Errorf("expect: ok and error are mutually exclusive")
	case !s.Expect.OK && s.Expect.Error == "":
		return fmt.Errorf("expect: one of ok or error is required")
	case s.Expect.Error != "" && !knownCodes[diag.Code(s.Expect.Error)]:
		return fmt.Errorf("expect: unknown error code %q", s.Expect.Error)
	case s.Expect.OK && (s.Expect.Name != "" || s.Expect.Pass != ""):
		return fmt.Errorf("expect: name and pass only apply to an error")
	case s.Expect.Error != "" && len(s.Assertions) > 0:
		return fmt.Errorf("assertions require expect.ok")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertIRContains:
		if a.Func == "" || a.Line == "" {
			return fmt.Errorf("assertions[%d]: func and line are required for ir_contains", index)
		}
	case AssertIROrder:
		if a.Func == "" || len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: func and lines are required for ir_order", index)
		}
	case AssertAssignCount:
		if a.Func == "" || a.Target == "" {
			return fmt.Errorf("assertions[%d]: func and target are required for assign_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for assign_count", index)
		}
	case AssertTempCount:
		if a.Func == "" {
			return fmt.Errorf("assertions[%d]: func is required for temp_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for temp_count", index)
		}
	case AssertRootNames:
		if len(a.Names) == 0 {
			return fmt.Errorf("assertions[%d]: names is required for root_names", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
