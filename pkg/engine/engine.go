package engine

import (
	"context"
	"io"
	"math/big"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/formula_miner/pkg/corpus"
	"github.com/wildfunctions/formula_miner/pkg/expr"
	"github.com/wildfunctions/formula_miner/pkg/formula"
	"github.com/wildfunctions/formula_miner/pkg/sequence"
)

// Engine checks the formulas of both corpora against known terms.
type Engine struct {
	cfg Config
}

// New creates a new engine from the given config.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Engine{cfg: cfg}, nil
}

// Run loads the corpora and terms, verifies every formula and returns the
// report.
func (e *Engine) Run(ctx context.Context) (Report, error) {
	loda, err := loadFormulas(e.cfg.Path(e.cfg.LODAFile), denySet(e.cfg.DenyLODA), corpus.ScanLODA)
	if err != nil {
		return Report{}, err
	}
	oeis, err := loadFormulas(e.cfg.Path(e.cfg.OEISFile), denySet(e.cfg.DenyOEIS), corpus.ScanOEIS)
	if err != nil {
		return Report{}, err
	}
	all := append(append([]*formula.Formula{}, loda...), oeis...)
	glog.Infof("Parsed %d LODA and %d OEIS formulas", len(loda), len(oeis))

	ids := map[string]bool{}
	for _, f := range all {
		ids[f.SequenceID] = true
	}
	offsets, err := readFile(e.cfg.Path(e.cfg.OffsetsFile), corpus.ReadOffsets)
	if err != nil {
		return Report{}, err
	}
	terms, err := readFile(e.cfg.Path(e.cfg.StrippedFile), func(r io.Reader) (map[string][]*big.Int, error) {
		return corpus.ReadTerms(r, ids, e.cfg.MaxTerms)
	})
	if err != nil {
		return Report{}, err
	}
	glog.Infof("Loaded terms for %d of %d sequences", len(terms), len(ids))

	results, err := e.verifyAll(ctx, all, offsets, terms)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Config:     e.cfg,
		ParsedLODA: len(loda),
		ParsedOEIS: len(oeis),
	}
	exercised := map[expr.Func]bool{}
	for i, f := range all {
		if len(terms[f.SequenceID]) > 0 {
			r.WithTerms++
		}
		res := results[i]
		if res.Mismatch != nil {
			r.Mismatches = append(r.Mismatches, *res.Mismatch)
		}
		if res.Comparisons == 0 {
			continue
		}
		r.Comparisons += res.Comparisons
		r.Checked++
		if f.Source == formula.SourceLODA {
			r.CheckedLODA++
		} else {
			r.CheckedOEIS++
		}
		for fn := range f.Funcs() {
			exercised[fn] = true
		}
		if res.OK() {
			r.Verified = append(r.Verified, Verified{
				SequenceID: f.SequenceID,
				Source:     f.Source,
				Expression: f.Expression,
				LaTeX:      f.LaTeX(),
			})
		}
	}
	for _, fn := range expr.AllFuncs {
		if exercised[fn] {
			r.Exercised = append(r.Exercised, fn.String())
		} else {
			r.Unexercised = append(r.Unexercised, fn.String())
		}
	}
	sort.SliceStable(r.Mismatches, func(i, j int) bool {
		return r.Mismatches[i].SequenceID < r.Mismatches[j].SequenceID
	})
	glog.Infof("Checked %d formulas, %d comparisons, %d mismatches", r.Checked, r.Comparisons, len(r.Mismatches))
	return r, nil
}

// verifyAll verifies every formula that has known terms in parallel.
// results[i] belongs to fs[i]; formulas without terms get a zero Result.
func (e *Engine) verifyAll(ctx context.Context, fs []*formula.Formula, offsets map[string]int64, terms map[string][]*big.Int) ([]sequence.Result, error) {
	results := make([]sequence.Result, len(fs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, f := range fs {
		i, f := i, f // per-iteration copies (go.mod targets go 1.21)
		t, ok := terms[f.SequenceID]
		if !ok || len(t) == 0 {
			continue
		}
		seq := sequence.Sequence{ID: f.SequenceID, Offset: offsets[f.SequenceID], Terms: t}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = sequence.Verify(f, seq, e.cfg.CompareTerms)
			if m := results[i].Mismatch; m != nil {
				glog.V(1).Infof("Mismatch: %s", m)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "verifying formulas")
	}
	return results, nil
}

func loadFormulas(path string, deny map[string]bool, scan func(io.Reader, map[string]bool) ([]*formula.Formula, error)) ([]*formula.Formula, error) {
	return readFile(path, func(r io.Reader) ([]*formula.Formula, error) {
		return scan(r, deny)
	})
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, errors.Wrapf(err, "reading %s", path)
	}
	return v, nil
}
