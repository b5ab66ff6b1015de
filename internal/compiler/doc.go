// Package compiler runs the semantic passes over a syntax tree in order:
//
//  1. declare top-level names (resolve pass 1)
//  2. reject cyclic type definitions (typedep)
//  3. resolve bodies and member lists (resolve pass 2)
//  4. validity checks on assignments and calls (check)
//  5. lower to IR (lower), then check label consistency (ir.Verify)
//
// Every pass stops at its first error. The error is returned wrapped in a
// *PassError naming the pass, so diag.Is and diag.CodeOf still see the
// underlying *diag.Error.
package compiler
