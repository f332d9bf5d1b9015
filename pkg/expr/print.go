package expr

import (
	"fmt"
	"strings"
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

// String methods render a fully parenthesised form that Parse accepts.

func (c *NumberNode) String() string {
	if c.Val.Sign() < 0 {
		return fmt.Sprintf("(%s)", c.Val)
	}
	return c.Val.String()
}

func (v *VarNode) String() string {
	return "n"
}

func (u *UnaryNode) String() string {
	if u.Op == OpNeg {
		return fmt.Sprintf("(-%s)", u.Operand)
	}
	return fmt.Sprintf("(+%s)", u.Operand)
}

func (b *BinaryNode) String() string {
	if b.Op == OpPow {
		return fmt.Sprintf("(%s)^%s", b.Left, b.Right)
	}
	return fmt.Sprintf("(%s %s %s)", b.Left, binaryOpSymbols[b.Op], b.Right)
}

func (f *FuncNode) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Func, strings.Join(args, ", "))
}

// LaTeX renders node in LaTeX math mode.
func LaTeX(node Node) string {
	switch t := node.(type) {
	case *NumberNode:
		return t.Val.String()
	case *VarNode:
		return "n"
	case *UnaryNode:
		if t.Op == OpNeg {
			return fmt.Sprintf("-{%s}", LaTeX(t.Operand))
		}
		return LaTeX(t.Operand)
	case *BinaryNode:
		left, right := LaTeX(t.Left), LaTeX(t.Right)
		switch t.Op {
		case OpAdd:
			return fmt.Sprintf("{%s} + {%s}", left, right)
		case OpSub:
			return fmt.Sprintf("{%s} - {%s}", left, right)
		case OpMul:
			return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
		case OpDiv:
			return fmt.Sprintf("\\frac{%s}{%s}", left, right)
		case OpPow:
			return fmt.Sprintf("\\left({%s}\\right)^{%s}", left, right)
		}
	case *FuncNode:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = LaTeX(a)
		}
		switch t.Func {
		case FuncFloor:
			return fmt.Sprintf("\\left\\lfloor %s \\right\\rfloor", args[0])
		case FuncCeil:
			return fmt.Sprintf("\\left\\lceil %s \\right\\rceil", args[0])
		case FuncBinomial:
			if len(args) == 2 {
				return fmt.Sprintf("\\binom{%s}{%s}", args[0], args[1])
			}
		case FuncSqrtint:
			return fmt.Sprintf("\\left\\lfloor \\sqrt{%s} \\right\\rfloor", args[0])
		}
		return fmt.Sprintf("\\operatorname{%s}(%s)", t.Func, strings.Join(args, ", "))
	}
	return ""
}
