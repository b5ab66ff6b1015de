// Package ir defines the linear intermediate representation produced by
// lowering and consumed by a code generator.
//
// Control flow is explicit: a function body is a flat list of statements in
// which structured constructs have become labels and jumps. Every label a
// function jumps to is defined exactly once in that function's body.
//
// Key design constraints:
//   - Stmt and Expr are sealed; consumers switch exhaustively over them
//   - Nodes are built once by lowering and never mutated afterwards
//   - Labels are per-function integers; only their identity matters
//   - The canonical JSON encoding is the only input to Hash
package ir
