package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format renders p as text, one statement per line. Labels start at column
// zero; everything else in a function body is indented two spaces.
//
//	var a int = 1
//	func main() void {
//	  temp __tmp0 int
//	  assign &a, add(var d, var b)
//	.L0:
//	  return
//	}
func Format(p *Program) string {
	var b strings.Builder
	Fprint(&b, p)
	return b.String()
}

// Fprint writes the text form of p to w.
func Fprint(w io.Writer, p *Program) {
	for _, v := range p.Vars {
		prefix := ""
		if v.Private {
			prefix = "static "
		}
		fmt.Fprintf(w, "%svar %s %s", prefix, v.Name, v.Type.String())
		if v.Init != nil {
			fmt.Fprintf(w, " = %s", ExprString(v.Init))
		}
		fmt.Fprintln(w)
	}

	for i, f := range p.Funcs {
		if i > 0 || len(p.Vars) > 0 {
			fmt.Fprintln(w)
		}
		fprintFunc(w, f)
	}
}

func fprintFunc(w io.Writer, f DefinedFunc) {
	params := make([]string, 0, len(f.Params.Fixed)+1)
	for _, p := range f.Params.Fixed {
		params = append(params, strings.TrimSpace(p.Type.String()+" "+p.Name))
	}
	if f.Params.Variadic {
		params = append(params, "...")
	}

	prefix := ""
	if f.Private {
		prefix = "static "
	}
	fmt.Fprintf(w, "%sfunc %s(%s) %s {\n", prefix, f.Name, strings.Join(params, ", "), f.Return.String())

	for _, t := range f.Temps {
		fmt.Fprintf(w, "  temp %s %s\n", t.Name, t.Type.String())
	}
	for _, s := range f.Body {
		if l, ok := s.(*LabelStmt); ok {
			fmt.Fprintf(w, "%s:\n", l.Label)
			continue
		}
		fmt.Fprintf(w, "  %s\n", StmtString(s))
	}
	fmt.Fprintln(w, "}")
}

// StmtString renders one statement.
func StmtString(s Stmt) string {
	switch s := s.(type) {
	case *Return:
		if s.X == nil {
			return "return"
		}
		return "return " + ExprString(s.X)
	case *Jump:
		return "jump " + s.Target.String()
	case *CJump:
		return fmt.Sprintf("cjump %s, %s, %s", ExprString(s.Cond), s.Then, s.Else)
	case *LabelStmt:
		return s.Label.String() + ":"
	case *ExprStmt:
		return "eval " + ExprString(s.X)
	case *Assign:
		return fmt.Sprintf("assign %s, %s", ExprString(s.Addr), ExprString(s.Value))
	}
	return fmt.Sprintf("<%T>", s)
}

// ExprString renders one expression in prefix form.
func ExprString(e Expr) string {
	switch e := e.(type) {
	case *Unary:
		return fmt.Sprintf("%s(%s)", e.Op, ExprString(e.X))
	case *Binary:
		return fmt.Sprintf("%s(%s, %s)", e.Op, ExprString(e.X), ExprString(e.Y))
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("call %s(%s)", e.Name, strings.Join(args, ", "))
	case *Addr:
		return "&" + e.Name
	case *Mem:
		return "*(" + ExprString(e.X) + ")"
	case *Var:
		return e.Name
	case *Const:
		if e.Kind == StrConst {
			return strconv.Quote(e.Str)
		}
		return strconv.FormatInt(e.Int, 10)
	}
	return fmt.Sprintf("<%T>", e)
}
