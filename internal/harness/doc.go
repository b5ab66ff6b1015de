// Package harness runs conformance scenarios against the compiler.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: short_circuit
//	description: "&& evaluates its right operand only when the left is true"
//	tree: trees/short_circuit.cue
//	expect:
//	  ok: true
//	golden: true
//	assertions:
//	  - type: ir_order
//	    func: main
//	    lines: ["cjump x, .L0, .L1", ".L0:", "assign &__tmp0, call f()"]
//	  - type: assign_count
//	    func: main
//	    target: r
//	    count: 1
//
// A scenario that must be rejected names the error code instead, and
// optionally the offending identifier and the pass:
//
//	expect:
//	  error: UNDEFINED_NAME
//	  name: nope
//	  pass: resolve
//
// The tree path is relative to the scenario file.
//
// # Assertion Types
//
//   - ir_contains: a line appears in the function's IR
//   - ir_order: lines appear in the function's IR in the given order
//   - assign_count: exactly count assignments store to target
//   - temp_count: the function declares exactly count temporaries
//   - root_names: the top-level names, in declaration order
//
// # Deterministic Testing
//
// Each scenario is recorded in a fresh in-memory build cache with a
// deterministic clock and sequential build IDs, so results and golden
// snapshots are identical across runs.
package harness
