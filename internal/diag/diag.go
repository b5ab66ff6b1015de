// Package diag defines the errors the semantic core reports.
//
// Every pass stops at its first error and returns it as a *Error. Callers
// classify errors with Is or CodeOf, which see through wrapping.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes a semantic error.
type Code string

const (
	// ErrCodeUndefinedName indicates a name or type not found in any enclosing scope.
	ErrCodeUndefinedName Code = "UNDEFINED_NAME"

	// ErrCodeDuplicateDefinition indicates a name declared twice in one scope.
	ErrCodeDuplicateDefinition Code = "DUPLICATE_DEFINITION"

	// ErrCodeCyclicTypeDefinition indicates a struct/union/typedef that contains itself.
	ErrCodeCyclicTypeDefinition Code = "CYCLIC_TYPE_DEFINITION"

	// ErrCodeInvalidAssignmentTarget indicates a left-hand side that is not variable-like.
	ErrCodeInvalidAssignmentTarget Code = "INVALID_ASSIGNMENT_TARGET"

	// ErrCodeNotCallable indicates a call whose target is not a function.
	ErrCodeNotCallable Code = "NOT_CALLABLE"

	// ErrCodeNotAConstant indicates a non-literal where a literal constant is required.
	ErrCodeNotAConstant Code = "NOT_A_CONSTANT"

	// ErrCodeUnresolvedEntity indicates a tree node the resolver should have
	// annotated but did not. This is a compiler defect, never a user error.
	ErrCodeUnresolvedEntity Code = "UNRESOLVED_ENTITY"

	// ErrCodeUnsupported indicates a construct the grammar accepts but the core
	// does not implement yet.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a semantic error with a category and the names it concerns.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Name is the offending identifier, when there is one.
	Name string

	// Path is the dependency chain of a cyclic type definition.
	Path []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Internal reports whether the error signals a compiler defect rather than
// a problem in the input program.
func (e *Error) Internal() bool {
	return e.Code == ErrCodeUnresolvedEntity
}

// UndefinedName reports a use of a name that is not declared.
func UndefinedName(name string) *Error {
	return &Error{
		Code:    ErrCodeUndefinedName,
		Message: fmt.Sprintf("`%s` is not defined", name),
		Name:    name,
	}
}

// UndefinedType reports a type name that is not declared (or not a type).
func UndefinedType(name string) *Error {
	return &Error{
		Code:    ErrCodeUndefinedName,
		Message: fmt.Sprintf("type %s is not defined", name),
		Name:    name,
	}
}

// DuplicateDefinition reports a name declared twice in the same scope.
func DuplicateDefinition(name string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateDefinition,
		Message: fmt.Sprintf("`%s` is already defined in this scope", name),
		Name:    name,
	}
}

// CyclicTypeDefinition reports a type dependency cycle. path starts and ends
// with the same type.
func CyclicTypeDefinition(path []string) *Error {
	name := ""
	if len(path) > 0 {
		name = path[0]
	}
	return &Error{
		Code:    ErrCodeCyclicTypeDefinition,
		Message: fmt.Sprintf("recursive type definition: %s", strings.Join(path, " -> ")),
		Name:    name,
		Path:    path,
	}
}

// InvalidAssignmentTarget reports an assignment whose left-hand side is not variable-like.
func InvalidAssignmentTarget(expr string) *Error {
	return &Error{
		Code:    ErrCodeInvalidAssignmentTarget,
		Message: fmt.Sprintf("left-hand side cannot be assigned: %s", expr),
	}
}

// NotCallable reports a call whose target is not a function.
func NotCallable(expr string) *Error {
	return &Error{
		Code:    ErrCodeNotCallable,
		Message: fmt.Sprintf("expression is not callable: %s", expr),
	}
}

// NotAConstant reports a non-literal initializer where a constant is required.
func NotAConstant(expr string) *Error {
	return &Error{
		Code:    ErrCodeNotAConstant,
		Message: fmt.Sprintf("%s is not a constant value", expr),
	}
}

// UnresolvedEntity reports a node that reached lowering without its entity.
func UnresolvedEntity(name string) *Error {
	return &Error{
		Code:    ErrCodeUnresolvedEntity,
		Message: fmt.Sprintf("%s has no resolved entity, this is a compiler bug", name),
		Name:    name,
	}
}

// Unsupported reports a recognised construct the core cannot handle yet.
func Unsupported(construct string) *Error {
	return &Error{
		Code:    ErrCodeUnsupported,
		Message: fmt.Sprintf("%s is not supported", construct),
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsUndefinedName reports whether err is an undefined-name error.
func IsUndefinedName(err error) bool { return Is(err, ErrCodeUndefinedName) }

// IsDuplicateDefinition reports whether err is a duplicate-definition error.
func IsDuplicateDefinition(err error) bool { return Is(err, ErrCodeDuplicateDefinition) }

// IsCyclicTypeDefinition reports whether err is a cyclic-type error.
func IsCyclicTypeDefinition(err error) bool { return Is(err, ErrCodeCyclicTypeDefinition) }
