package ir

// Op is an IR operator. Division, remainder, comparison, right shift and
// cast come in signed and unsigned forms; lowering picks one from the
// operand types.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	SDiv
	UDiv
	SMod
	UMod
	Not
	BitAnd
	BitOr
	BitXor
	BitNot
	BitLShift
	BitRShift
	ArithRShift
	EQ
	NEQ
	SGt
	UGt
	SGteq
	UGteq
	SLt
	ULt
	SLteq
	ULteq
	UMinus
	SCast
	UCast
)

var opNames = [...]string{
	Add:         "add",
	Sub:         "sub",
	Mul:         "mul",
	SDiv:        "sdiv",
	UDiv:        "udiv",
	SMod:        "smod",
	UMod:        "umod",
	Not:         "not",
	BitAnd:      "and",
	BitOr:       "or",
	BitXor:      "xor",
	BitNot:      "bitnot",
	BitLShift:   "shl",
	BitRShift:   "shr",
	ArithRShift: "sar",
	EQ:          "eq",
	NEQ:         "ne",
	SGt:         "sgt",
	UGt:         "ugt",
	SGteq:       "sge",
	UGteq:       "uge",
	SLt:         "slt",
	ULt:         "ult",
	SLteq:       "sle",
	ULteq:       "ule",
	UMinus:      "neg",
	SCast:       "scast",
	UCast:       "ucast",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op?"
	}
	return opNames[op]
}
