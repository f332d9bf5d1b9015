package expr

import (
	"fmt"
	"math/big"
	"strings"
)

// Kind identifies the type of a lexer token.
type Kind int

const (
	KindInteger Kind = iota
	KindVariable
	KindFunction
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindPow
	KindLParen
	KindRParen
	KindComma
	KindEOF
)

var kindNames = map[Kind]string{
	KindInteger:  "INTEGER",
	KindVariable: "VARIABLE",
	KindFunction: "FUNCTION",
	KindAdd:      "ADD",
	KindSub:      "SUB",
	KindMul:      "MUL",
	KindDiv:      "DIV",
	KindPow:      "POW",
	KindLParen:   "LPAREN",
	KindRParen:   "RPAREN",
	KindComma:    "COMMA",
	KindEOF:      "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Func identifies one of the supported named functions.
type Func int

const (
	FuncFloor Func = iota
	FuncCeil
	FuncBinomial
	FuncSqrtint
	FuncGCD
	FuncSumdigits
)

var funcNames = map[Func]string{
	FuncFloor:     "floor",
	FuncCeil:      "ceil",
	FuncBinomial:  "binomial",
	FuncSqrtint:   "sqrtint",
	FuncGCD:       "gcd",
	FuncSumdigits: "sumdigits",
}

// AllFuncs lists every supported function in declaration order.
var AllFuncs = []Func{FuncFloor, FuncCeil, FuncBinomial, FuncSqrtint, FuncGCD, FuncSumdigits}

func (f Func) String() string {
	if s, ok := funcNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Func(%d)", int(f))
}

// LookupFunc resolves a function name, ignoring case.
func LookupFunc(name string) (Func, bool) {
	name = strings.ToLower(name)
	for f, s := range funcNames {
		if s == name {
			return f, true
		}
	}
	return 0, false
}

// Token is a single lexer token. Int is set for KindInteger and Func for
// KindFunction. Pos is the byte offset in the input.
type Token struct {
	Kind Kind
	Int  *big.Int
	Func Func
	Pos  int
}

func (t Token) String() string {
	switch t.Kind {
	case KindInteger:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Int)
	case KindFunction:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Func)
	}
	return t.Kind.String()
}
