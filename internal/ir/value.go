package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a JSON value in the canonical encoding of a program.
// Only VString, VInt, VBool, VArray and VObject implement it. There is no
// float and no null: absent fields are omitted.
type Value interface {
	value()
}

// VString is a JSON string.
type VString string

// VInt is a JSON integer.
type VInt int64

// VBool is a JSON boolean.
type VBool bool

// VArray is a JSON array.
type VArray []Value

// VObject is a JSON object. Use SortedKeys for deterministic iteration.
type VObject map[string]Value

func (VString) value() {}
func (VInt) value()    {}
func (VBool) value()   {}
func (VArray) value()  {}
func (VObject) value() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's string comparison orders by UTF-8 bytes, which differs for
// characters outside the Basic Multilingual Plane.
func (obj VObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
