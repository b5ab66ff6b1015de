package ast

import (
	"fmt"
	"strings"
)

// BaseKind is the base of a type before pointer/array suffixes.
type BaseKind int

const (
	Void BaseKind = iota
	Char
	Short
	Int
	Long
	UnsignedChar
	UnsignedShort
	UnsignedInt
	UnsignedLong
	StructType
	UnionType
	NamedType // typedef name
)

var baseNames = map[BaseKind]string{
	Void:          "void",
	Char:          "char",
	Short:         "short",
	Int:           "int",
	Long:          "long",
	UnsignedChar:  "unsigned char",
	UnsignedShort: "unsigned short",
	UnsignedInt:   "unsigned int",
	UnsignedLong:  "unsigned long",
}

// Builtin reports whether the base kind names a built-in type.
func (k BaseKind) Builtin() bool {
	_, ok := baseNames[k]
	return ok
}

// SuffixKind distinguishes pointer and array type suffixes.
type SuffixKind int

const (
	PointerSuffix SuffixKind = iota
	ArraySuffix
)

// Suffix is one `*` or `[n]` applied to a base type. Len is -1 for `[]`.
type Suffix struct {
	Kind SuffixKind
	Len  int
}

// TypeRef is a type as written in source: a base plus suffixes.
// Entity is attached by the resolver for struct, union and typedef bases.
type TypeRef struct {
	Base     BaseKind
	Name     string // struct/union tag or typedef name
	Suffixes []Suffix
	Entity   Entity
}

// TypeOf returns a built-in type reference.
func TypeOf(base BaseKind) TypeRef {
	return TypeRef{Base: base}
}

// StructRef returns a reference to `struct name`.
func StructRef(name string) TypeRef {
	return TypeRef{Base: StructType, Name: name}
}

// UnionRef returns a reference to `union name`.
func UnionRef(name string) TypeRef {
	return TypeRef{Base: UnionType, Name: name}
}

// NamedRef returns a reference to the typedef `name`.
func NamedRef(name string) TypeRef {
	return TypeRef{Base: NamedType, Name: name}
}

// Pointer returns t with one more pointer suffix.
func (t TypeRef) Pointer() TypeRef {
	t.Suffixes = append(append([]Suffix(nil), t.Suffixes...), Suffix{Kind: PointerSuffix})
	return t
}

// Array returns t with an array suffix of length n (-1 for unsized).
func (t TypeRef) Array(n int) TypeRef {
	t.Suffixes = append(append([]Suffix(nil), t.Suffixes...), Suffix{Kind: ArraySuffix, Len: n})
	return t
}

// Elem returns the type t points to or holds elements of. A type without
// suffixes has no element type and yields int.
func (t TypeRef) Elem() TypeRef {
	if len(t.Suffixes) == 0 {
		return TypeOf(Int)
	}
	t.Suffixes = t.Suffixes[:len(t.Suffixes)-1 : len(t.Suffixes)-1]
	return t
}

// WithEntity returns a copy of t carrying e.
func (t TypeRef) WithEntity(e Entity) TypeRef {
	t.Entity = e
	return t
}

// IsPointer reports whether any suffix is a pointer. A pointer member does not
// impose a layout dependency on its base type.
func (t TypeRef) IsPointer() bool {
	for _, s := range t.Suffixes {
		if s.Kind == PointerSuffix {
			return true
		}
	}
	return false
}

// IsNamed reports whether the base refers to a user-declared type.
func (t TypeRef) IsNamed() bool {
	return t.Base == StructType || t.Base == UnionType || t.Base == NamedType
}

// IsUnsigned reports whether values of t compare and divide as unsigned.
// Pointers are unsigned; typedefs follow their attached alias.
func (t TypeRef) IsUnsigned() bool {
	if len(t.Suffixes) > 0 {
		return t.Suffixes[len(t.Suffixes)-1].Kind == PointerSuffix
	}
	switch t.Base {
	case UnsignedChar, UnsignedShort, UnsignedInt, UnsignedLong:
		return true
	case NamedType:
		if td, ok := t.Entity.(TypeDef); ok {
			return td.Aliased.IsUnsigned()
		}
	}
	return false
}

func (t TypeRef) String() string {
	var b strings.Builder
	switch t.Base {
	case StructType:
		b.WriteString("struct " + t.Name)
	case UnionType:
		b.WriteString("union " + t.Name)
	case NamedType:
		b.WriteString(t.Name)
	default:
		b.WriteString(baseNames[t.Base])
	}
	for _, s := range t.Suffixes {
		switch {
		case s.Kind == PointerSuffix:
			b.WriteString("*")
		case s.Len < 0:
			b.WriteString("[]")
		default:
			fmt.Fprintf(&b, "[%d]", s.Len)
		}
	}
	return b.String()
}

// ParseBase maps a C base-type spelling to its kind.
func ParseBase(s string) (BaseKind, bool) {
	for k, name := range baseNames {
		if name == s {
			return k, true
		}
	}
	switch s {
	case "unsigned":
		return UnsignedInt, true
	case "signed", "signed int":
		return Int, true
	}
	return 0, false
}
