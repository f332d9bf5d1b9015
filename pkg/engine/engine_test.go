package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/formula_miner/pkg/formula"
)

var testData = map[string]string{
	"formulas-loda.txt": `A000217: a(n) = binomial(n+1,2)
A000290: a(n) = n^2
A004526: a(n) = floor(n/2)
A000045: a(n) = a(n-1)+a(n-2), a(0) = 0
A000196: a(n) = sqrtint(n)
A007953: a(n) = sumdigits(n)
A000027: a(n) = n+2
`,
	"formulas-oeis.txt": `A000217: Triangular numbers.
  a(n) = n*(n+1)/2.
A002378: a(n) = n*(n+1).
`,
	"offsets": `A000027: 1,1
A000196: 0,4
A000217: 0,3
A000290: 0,2
A002378: 0,2
A004526: 0,3
A007953: 0,2
`,
	"stripped": `# OEIS stripped
A000027 ,1,2,3,4,5,6,7,
A000196 ,0,1,1,1,2,2,2,
A000217 ,0,1,3,6,10,15,21,
A000290 ,0,1,4,9,16,25,
A002378 ,0,2,6,12,20,30,
A004526 ,0,0,1,1,2,2,3,
A007953 ,0,1,2,3,4,5,6,
`,
}

func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range testData {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.DataDir = writeTestData(t)
	cfg.Workers = 4
	return cfg
}

func TestEngine_Run(t *testing.T) {
	e, err := New(testConfig(t))
	require.NoError(t, err)

	r, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, r.ParsedLODA)
	assert.Equal(t, 2, r.ParsedOEIS)
	assert.Equal(t, 8, r.WithTerms)
	assert.Equal(t, 8, r.Checked)
	assert.Equal(t, 6, r.CheckedLODA)
	assert.Equal(t, 2, r.CheckedOEIS)
	assert.Equal(t, 7*5+1, r.Comparisons)

	require.Len(t, r.Mismatches, 1)
	m := r.Mismatches[0]
	assert.Equal(t, "A000027", m.SequenceID)
	assert.Equal(t, formula.SourceLODA, m.Source)
	assert.Equal(t, int64(1), m.N)
	assert.Equal(t, "3", m.Got)
	assert.Equal(t, "1", m.Expected)

	assert.Len(t, r.Verified, 7)
	assert.Equal(t, []string{"floor", "binomial", "sqrtint", "sumdigits"}, r.Exercised)
	assert.Equal(t, []string{"ceil", "gcd"}, r.Unexercised)
}

func TestEngine_Deny(t *testing.T) {
	cfg := testConfig(t)
	cfg.DenyLODA = []string{"A000027"}
	cfg.DenyOEIS = []string{"A000217"}
	e, err := New(cfg)
	require.NoError(t, err)

	r, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, r.ParsedLODA)
	assert.Equal(t, 1, r.ParsedOEIS)
	assert.Empty(t, r.Mismatches)
	assert.Equal(t, 6*5, r.Comparisons)
}

func TestEngine_MissingTerms(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Path(cfg.StrippedFile), []byte("A000290 ,0,1,4,9,16,25,\n"), 0o644))
	e, err := New(cfg)
	require.NoError(t, err)

	r, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, r.ParsedLODA+r.ParsedOEIS)
	assert.Equal(t, 1, r.WithTerms)
	assert.Equal(t, 1, r.Checked)
	assert.Equal(t, 5, r.Comparisons)
	assert.Empty(t, r.Exercised)
	assert.Equal(t, []string{"floor", "ceil", "binomial", "sqrtint", "gcd", "sumdigits"}, r.Unexercised)
}

func TestEngine_MissingFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.Path(cfg.OffsetsFile)))
	e, err := New(cfg)
	require.NoError(t, err)

	_, err = e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offsets")
}

func TestEngine_Cancelled(t *testing.T) {
	e, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "workers"))
}

func TestEngine_EmptyTermRecord(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Path(cfg.StrippedFile), []byte("A000290 ,\nA000217 ,0,1,3,6,10,15,\n"), 0o644))
	e, err := New(cfg)
	require.NoError(t, err)

	r, err := e.Run(context.Background())
	require.NoError(t, err)
	// A000217 has one LODA and one OEIS formula; A000290 has no usable terms.
	assert.Equal(t, 2, r.WithTerms)
	assert.Equal(t, 2, r.Checked)
	assert.Equal(t, 10, r.Comparisons)
}
