// Package ast defines the syntax tree consumed by the semantic core.
//
// The tree is produced by an external parser (or decoded from a tree document by
// package syntax). Every node family is a sealed interface: only types in this
// package implement it, so consumers can switch exhaustively over the variants.
//
// The resolver annotates the tree in place:
//   - Ident.Entity, Call.Entity and VarInit.Entity receive entity snapshots
//   - TypeRef.Entity receives the struct/union/typedef a named type refers to
//   - FuncDecl.Scope, BlockStmt.Scope and SwitchStmt.Scope receive scope handles
//
// Entities are immutable values. Resolving a use copies the entity found at that
// moment onto the node; later replacements in the scope are not observed there.
package ast
