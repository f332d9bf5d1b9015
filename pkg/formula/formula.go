package formula

import (
	"fmt"
	"math/big"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/wildfunctions/formula_miner/pkg/expr"
)

// Source tags the corpus a formula was mined from.
type Source string

const (
	SourceOEIS Source = "oeis"
	SourceLODA Source = "loda"
)

// Formula is a parsed closed form a(n) = Expression for one sequence. It
// holds no mutable state and may be evaluated concurrently.
type Formula struct {
	SequenceID string
	Source     Source
	Expression string // sanitized source text
	Root       expr.Node
}

// Parse sanitizes, tokenizes and parses text. It returns nil if any stage
// fails; use Compile to learn why.
func Parse(seqID string, source Source, text string) *Formula {
	f, err := Compile(seqID, source, text)
	if err != nil {
		glog.V(2).Infof("%s [%s] %q: %v", seqID, source, text, err)
		return nil
	}
	return f
}

// Compile is Parse with the failure reason surfaced.
func Compile(seqID string, source Source, text string) (*Formula, error) {
	cleaned, err := expr.Sanitize(text)
	if err != nil {
		return nil, err
	}
	root, err := expr.ParseString(cleaned)
	if err != nil {
		return nil, err
	}
	return &Formula{
		SequenceID: seqID,
		Source:     source,
		Expression: cleaned,
		Root:       root,
	}, nil
}

// Evaluate returns a(n).
func (f *Formula) Evaluate(n int64) (Value, error) {
	return f.EvaluateBig(big.NewInt(n))
}

// EvaluateBig returns a(n) for an arbitrary precision index.
func (f *Formula) EvaluateBig(n *big.Int) (Value, error) {
	r, err := expr.Eval(f.Root, n)
	if err != nil {
		return Value{}, errors.Wrapf(err, "%s at n=%s", f.SequenceID, n)
	}
	return Value{rat: r}, nil
}

// String returns a human-readable representation.
func (f *Formula) String() string {
	return fmt.Sprintf("%s [%s]: a(n) = %s", f.SequenceID, f.Source, f.Expression)
}

// LaTeX returns a LaTeX representation of the closed form.
func (f *Formula) LaTeX() string {
	return "a(n) = " + expr.LaTeX(f.Root)
}

// Funcs returns the named functions the formula calls.
func (f *Formula) Funcs() map[expr.Func]bool {
	return expr.Funcs(f.Root)
}
