package ast

// Expr is an expression node.
// This is a sealed interface - only types in this package implement it.
type Expr interface {
	expr()
}

// UnaryOp is a prefix or postfix operator.
type UnaryOp int

const (
	UPlus UnaryOp = iota
	UMinus
	LogNot
	BitNot
	Deref
	AddrOf
	PreInc
	PreDec
	PostInc
	PostDec
)

var unarySpelling = [...]string{
	UPlus:   "+",
	UMinus:  "-",
	LogNot:  "!",
	BitNot:  "~",
	Deref:   "*",
	AddrOf:  "&",
	PreInc:  "++",
	PreDec:  "--",
	PostInc: "++",
	PostDec: "--",
}

func (op UnaryOp) String() string { return unarySpelling[op] }

// Postfix reports whether the operator is written after its operand.
func (op UnaryOp) Postfix() bool { return op == PostInc || op == PostDec }

// BinaryOp is an infix operator. Compound assignments reuse it for their
// arithmetic part.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	BitAnd
	BitOr
	BitXor
	LogAnd
	LogOr
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

var binarySpelling = [...]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Mod:    "%",
	Shl:    "<<",
	Shr:    ">>",
	BitAnd: "&",
	BitOr:  "|",
	BitXor: "^",
	LogAnd: "&&",
	LogOr:  "||",
	Eq:     "==",
	Ne:     "!=",
	Lt:     "<",
	Le:     "<=",
	Gt:     ">",
	Ge:     ">=",
}

func (op BinaryOp) String() string { return binarySpelling[op] }

// ParseBinaryOp maps an operator spelling to its BinaryOp.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for op, sp := range binarySpelling {
		if sp == s {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// ParseCompoundOp maps a compound assignment spelling ("+=", "<<=", ...) to
// its arithmetic operator. Logical and comparison operators have no compound form.
func ParseCompoundOp(s string) (BinaryOp, bool) {
	if len(s) < 2 || s[len(s)-1] != '=' {
		return 0, false
	}
	op, ok := ParseBinaryOp(s[:len(s)-1])
	if !ok || op >= LogAnd {
		return 0, false
	}
	return op, true
}

// ParseUnaryOp maps a prefix operator spelling to its UnaryOp.
// Postfix operators are selected by the caller.
func ParseUnaryOp(s string) (UnaryOp, bool) {
	for op, sp := range unarySpelling[:PostInc] {
		if sp == s {
			return UnaryOp(op), true
		}
	}
	return 0, false
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// CharLit is a character literal.
type CharLit struct {
	Value rune
}

// StrLit is a string literal.
type StrLit struct {
	Value string
}

// Ident is a use of a name.
type Ident struct {
	Name   string
	Entity Entity // attached by the resolver
}

// Unary applies a prefix or postfix operator.
type Unary struct {
	Op UnaryOp
	X  Expr
}

// Binary applies an infix operator, including && and ||.
type Binary struct {
	Op   BinaryOp
	X, Y Expr
}

// Assign is `LHS = RHS`.
type Assign struct {
	LHS, RHS Expr
}

// CompoundAssign is `LHS op= RHS`.
type CompoundAssign struct {
	Op       BinaryOp
	LHS, RHS Expr
}

// Call is a function call. Entity is the callee's declaration, attached by
// the resolver when the callee is a plain name.
type Call struct {
	Callee Expr
	Args   []Expr
	Entity Entity
}

// Cast converts X to Type.
type Cast struct {
	Type TypeRef
	X    Expr
}

// Cond is the ternary `Cond ? Then : Else`.
type Cond struct {
	Cond, Then, Else Expr
}

// FieldAccess is `X.Name` or `X->Name`.
type FieldAccess struct {
	X     Expr
	Name  string
	Arrow bool
}

// Index is `X[Index]`.
type Index struct {
	X, Index Expr
}

// SizeofExpr is `sizeof X`.
type SizeofExpr struct {
	X Expr
}

// SizeofType is `sizeof(Type)`.
type SizeofType struct {
	Type TypeRef
}

func (*IntLit) expr() {}
func (*CharLit) expr() {}
func (*StrLit) expr() {}
func (*Ident) expr() {}
func (*Unary) expr() {}
func (*Binary) expr() {}
func (*Assign) expr() {}
func (*CompoundAssign) expr() {}
func (*Call) expr() {}
func (*Cast) expr() {}
func (*Cond) expr() {}
func (*FieldAccess) expr() {}
func (*Index) expr() {}
func (*SizeofExpr) expr() {}
func (*SizeofType) expr() {}

// CalleeName returns the callee's name when it is a plain identifier.
func (c *Call) CalleeName() (string, bool) {
	id, ok := c.Callee.(*Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}
