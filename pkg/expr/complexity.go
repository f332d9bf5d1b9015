package expr

func (c *NumberNode) NodeCount() int { return 1 }
func (v *VarNode) NodeCount() int    { return 1 }
func (u *UnaryNode) NodeCount() int  { return 1 + u.Operand.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}
func (f *FuncNode) NodeCount() int {
	n := 1
	for _, a := range f.Args {
		n += a.NodeCount()
	}
	return n
}

func (c *NumberNode) Depth() int { return 1 }
func (v *VarNode) Depth() int    { return 1 }
func (u *UnaryNode) Depth() int  { return 1 + u.Operand.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
func (f *FuncNode) Depth() int {
	d := 0
	for _, a := range f.Args {
		if ad := a.Depth(); ad > d {
			d = ad
		}
	}
	return 1 + d
}

// ContainsVar reports whether node references n anywhere.
func ContainsVar(node Node) bool {
	switch t := node.(type) {
	case *VarNode:
		return true
	case *UnaryNode:
		return ContainsVar(t.Operand)
	case *BinaryNode:
		return ContainsVar(t.Left) || ContainsVar(t.Right)
	case *FuncNode:
		for _, a := range t.Args {
			if ContainsVar(a) {
				return true
			}
		}
	}
	return false
}

// Funcs returns the set of named functions called anywhere in node.
func Funcs(node Node) map[Func]bool {
	used := map[Func]bool{}
	collectFuncs(node, used)
	return used
}

func collectFuncs(node Node, used map[Func]bool) {
	switch t := node.(type) {
	case *UnaryNode:
		collectFuncs(t.Operand, used)
	case *BinaryNode:
		collectFuncs(t.Left, used)
		collectFuncs(t.Right, used)
	case *FuncNode:
		used[t.Func] = true
		for _, a := range t.Args {
			collectFuncs(a, used)
		}
	}
}
