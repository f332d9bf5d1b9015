package expr

import "math/big"

// Node is the interface for all expression tree nodes. The set of
// implementations is closed: NumberNode, VarNode, UnaryNode, BinaryNode and
// FuncNode. Nodes are never modified after the parser builds them.
type Node interface {
	String() string
	NodeCount() int
	Depth() int

	node()
}

// UnaryOp identifies a unary sign.
type UnaryOp int

const (
	OpPos UnaryOp = iota
	OpNeg
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// NumberNode represents an integer literal.
type NumberNode struct {
	Val *big.Int
}

// VarNode represents the variable n.
type VarNode struct{}

// UnaryNode applies a sign to its operand.
type UnaryNode struct {
	Op      UnaryOp
	Operand Node
}

// BinaryNode applies a binary operation to two child expressions. For OpPow
// the right child is always a *NumberNode.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right Node
}

// FuncNode calls one of the named functions. Args holds at least one node.
type FuncNode struct {
	Func Func
	Args []Node
}

func (*NumberNode) node() {}
func (*VarNode) node()    {}
func (*UnaryNode) node()  {}
func (*BinaryNode) node() {}
func (*FuncNode) node()   {}
