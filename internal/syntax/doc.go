// Package syntax decodes syntax-tree documents into ast programs.
//
// A document is CUE (and therefore also plain JSON). Its top-level
// "program" field lists declarations. Every declaration, statement and
// expression is an object with exactly one field whose label selects the
// node kind:
//
//	program: [
//		{var: {type: "int", names: [{name: "a", init: {int: 1}}]}},
//		{"func": {
//			return: "void"
//			name:   "main"
//			body: [
//				{expr: {assign: {lhs: {ident: "a"}, rhs: {int: 2}}}},
//			]
//		}},
//	]
//
// Types are written as C spellings: "int", "unsigned long", "struct A*",
// "union B", "myint", "char[16]".
//
// Decoding rejects unknown labels and missing fields with a *DecodeError
// that carries the CUE source position.
package syntax
