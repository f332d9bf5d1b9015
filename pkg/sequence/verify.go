// Package sequence checks parsed formulas against known sequence terms.
package sequence

import (
	"fmt"
	"math/big"

	"github.com/wildfunctions/formula_miner/pkg/formula"
)

// Sequence is a known prefix of an integer sequence: Terms[i] = a(Offset+i).
type Sequence struct {
	ID     string
	Offset int64
	Terms  []*big.Int
}

// Mismatch records the first index at which a formula disagrees with the
// known terms.
type Mismatch struct {
	SequenceID string         `json:"id"`
	Source     formula.Source `json:"source"`
	Expression string         `json:"expr"`
	N          int64          `json:"n"`
	Got        string         `json:"got"`
	Expected   string         `json:"expected"`
	Err        string         `json:"error,omitempty"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s [%s] n=%d expr=%s -> got %s, expected %s",
		m.SequenceID, m.Source, m.N, m.Expression, m.Got, m.Expected)
}

// Result holds the outcome of verifying one formula.
type Result struct {
	Comparisons int
	Mismatch    *Mismatch
}

// OK reports whether at least one term was compared and all agreed.
func (r Result) OK() bool {
	return r.Comparisons > 0 && r.Mismatch == nil
}

// Verify evaluates f at Offset, Offset+1, ... for the first limit known terms
// (all of them if limit <= 0) and stops at the first disagreement. An
// evaluation error counts as a disagreement.
func Verify(f *formula.Formula, seq Sequence, limit int) Result {
	if limit <= 0 || limit > len(seq.Terms) {
		limit = len(seq.Terms)
	}
	var res Result
	for i := 0; i < limit; i++ {
		n := seq.Offset + int64(i)
		want := seq.Terms[i]
		got, err := f.Evaluate(n)
		if err != nil {
			res.Mismatch = newMismatch(f, n, "error", want)
			res.Mismatch.Err = err.Error()
			return res
		}
		res.Comparisons++
		if !got.Equal(want) {
			res.Mismatch = newMismatch(f, n, got.String(), want)
			return res
		}
	}
	return res
}

func newMismatch(f *formula.Formula, n int64, got string, want *big.Int) *Mismatch {
	return &Mismatch{
		SequenceID: f.SequenceID,
		Source:     f.Source,
		Expression: f.Expression,
		N:          n,
		Got:        got,
		Expected:   want.String(),
	}
}
