package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/cbc/internal/ast"
)

// ParseType parses a C type spelling: a base type followed by any number
// of `*`, `[n]` or `[]` suffixes.
func ParseType(s string) (ast.TypeRef, error) {
	i := strings.IndexAny(s, "*[")
	if i < 0 {
		i = len(s)
	}

	t, err := parseBase(strings.Join(strings.Fields(s[:i]), " "))
	if err != nil {
		return ast.TypeRef{}, err
	}

	rest := s[i:]
	for rest = strings.TrimSpace(rest); rest != ""; rest = strings.TrimSpace(rest) {
		switch rest[0] {
		case '*':
			t = t.Pointer()
			rest = rest[1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return ast.TypeRef{}, fmt.Errorf("type %q: unterminated array suffix", s)
			}
			n, err := arrayLen(strings.TrimSpace(rest[1:end]))
			if err != nil {
				return ast.TypeRef{}, fmt.Errorf("type %q: %w", s, err)
			}
			t = t.Array(n)
			rest = rest[end+1:]
		default:
			return ast.TypeRef{}, fmt.Errorf("type %q: unexpected %q", s, rest)
		}
	}
	return t, nil
}

func parseBase(base string) (ast.TypeRef, error) {
	if base == "" {
		return ast.TypeRef{}, fmt.Errorf("type is empty")
	}
	if k, ok := ast.ParseBase(base); ok {
		return ast.TypeOf(k), nil
	}

	word, name, _ := strings.Cut(base, " ")
	switch word {
	case "struct", "union":
		if !isIdent(name) {
			return ast.TypeRef{}, fmt.Errorf("type %q: invalid %s tag", base, word)
		}
		if word == "struct" {
			return ast.StructRef(name), nil
		}
		return ast.UnionRef(name), nil
	}

	if !isIdent(base) {
		return ast.TypeRef{}, fmt.Errorf("type %q is not a type name", base)
	}
	return ast.NamedRef(base), nil
}

func arrayLen(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid array length %q", s)
	}
	return n, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
