package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprString renders e in C syntax. Subexpressions other than names and
// literals are parenthesised so the output is unambiguous in diagnostics.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *IntLit:
		b.WriteString(strconv.FormatInt(e.Value, 10))
	case *CharLit:
		b.WriteString(strconv.QuoteRune(e.Value))
	case *StrLit:
		b.WriteString(strconv.Quote(e.Value))
	case *Ident:
		b.WriteString(e.Name)
	case *Unary:
		if e.Op.Postfix() {
			writeOperand(b, e.X)
			b.WriteString(e.Op.String())
			return
		}
		b.WriteString(e.Op.String())
		writeOperand(b, e.X)
	case *Binary:
		writeOperand(b, e.X)
		fmt.Fprintf(b, " %s ", e.Op)
		writeOperand(b, e.Y)
	case *Assign:
		writeOperand(b, e.LHS)
		b.WriteString(" = ")
		writeOperand(b, e.RHS)
	case *CompoundAssign:
		writeOperand(b, e.LHS)
		fmt.Fprintf(b, " %s= ", e.Op)
		writeOperand(b, e.RHS)
	case *Call:
		writeOperand(b, e.Callee)
		b.WriteString("(")
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a)
		}
		b.WriteString(")")
	case *Cast:
		fmt.Fprintf(b, "(%s)", e.Type)
		writeOperand(b, e.X)
	case *Cond:
		writeOperand(b, e.Cond)
		b.WriteString(" ? ")
		writeOperand(b, e.Then)
		b.WriteString(" : ")
		writeOperand(b, e.Else)
	case *FieldAccess:
		writeOperand(b, e.X)
		if e.Arrow {
			b.WriteString("->")
		} else {
			b.WriteString(".")
		}
		b.WriteString(e.Name)
	case *Index:
		writeOperand(b, e.X)
		b.WriteString("[")
		writeExpr(b, e.Index)
		b.WriteString("]")
	case *SizeofExpr:
		b.WriteString("sizeof ")
		writeOperand(b, e.X)
	case *SizeofType:
		fmt.Fprintf(b, "sizeof(%s)", e.Type)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

func writeOperand(b *strings.Builder, e Expr) {
	switch e.(type) {
	case *IntLit, *CharLit, *StrLit, *Ident, *Call:
		writeExpr(b, e)
	default:
		b.WriteString("(")
		writeExpr(b, e)
		b.WriteString(")")
	}
}
