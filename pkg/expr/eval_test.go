package expr

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Node {
	t.Helper()
	node, err := ParseString(s)
	require.NoError(t, err, s)
	return node
}

func evalAt(t *testing.T, node Node, n int64) *big.Rat {
	t.Helper()
	v, err := Eval(node, big.NewInt(n))
	require.NoError(t, err, "%s at n=%d", node, n)
	return v
}

func assertEvalInt(t *testing.T, s string, n, want int64) {
	t.Helper()
	got := evalAt(t, mustParse(t, s), n)
	if got.Cmp(new(big.Rat).SetInt64(want)) != 0 {
		t.Errorf("%s at n=%d = %s, want %d", s, n, got.RatString(), want)
	}
}

func TestEval_LiteralsAndVariable(t *testing.T) {
	for _, n := range []int64{-7, 0, 1, 12345} {
		assertEvalInt(t, "17", n, 17)
		assertEvalInt(t, "n", n, n)
		assertEvalInt(t, "N", n, n)
		assertEvalInt(t, "n^0", n, 1)
		assertEvalInt(t, "n^1", n, n)
		assertEvalInt(t, "-n", n, -n)
		assertEvalInt(t, "+n", n, n)
	}
}

func TestEval_Sequences(t *testing.T) {
	cases := []struct {
		expr string
		want []int64
	}{
		{"floor((n+1)/2)", []int64{0, 1, 1, 2, 2, 3}},
		{"binomial(n,2)", []int64{0, 0, 1, 3, 6, 10}},
		{"n*(n+1)/2", []int64{0, 1, 3, 6, 10, 15}},
		{"sqrtint(n)", []int64{0, 1, 1, 1, 2, 2}},
		{"ceil(n/3)", []int64{0, 1, 1, 1, 2, 2}},
		{"gcd(n, 4)", []int64{4, 1, 2, 1, 4, 1}},
		{"sumdigits(n, 2)", []int64{0, 1, 1, 2, 1, 2}},
		{"-n^2", []int64{0, -1, -4, -9, -16, -25}},
	}
	for _, tc := range cases {
		node := mustParse(t, tc.expr)
		for n, want := range tc.want {
			got := evalAt(t, node, int64(n))
			if got.Cmp(new(big.Rat).SetInt64(want)) != 0 {
				t.Errorf("%s at n=%d = %s, want %d", tc.expr, n, got.RatString(), want)
			}
		}
	}
}

func TestEval_AlgebraicIdentities(t *testing.T) {
	square := mustParse(t, "(n+1)*(n+1)")
	expanded := mustParse(t, "n^2+2*n+1")
	triangle := mustParse(t, "n*(n+1)/2")
	for n := int64(-20); n <= 20; n++ {
		assert.Equal(t, 0, evalAt(t, square, n).Cmp(evalAt(t, expanded, n)), "n=%d", n)

		tri := evalAt(t, triangle, n)
		require.True(t, tri.IsInt(), "n=%d", n)
		assert.Equal(t, n*(n+1)/2, tri.Num().Int64())
	}
}

func TestEval_ExactRational(t *testing.T) {
	got := evalAt(t, mustParse(t, "n/2"), 3)
	assert.Equal(t, "3/2", got.RatString())

	got = evalAt(t, mustParse(t, "(1/3 + 1/6) * 2"), 0)
	assert.Equal(t, "1", got.RatString())
}

func TestEval_FloorCeil(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"floor(7/2)", 3},
		{"floor(-7/2)", -4},
		{"ceil(7/2)", 4},
		{"ceil(-7/2)", -3},
		{"floor(6/2)", 3},
		{"ceil(-6/2)", -3},
		{"floor(5)", 5},
	}
	for _, tc := range cases {
		assertEvalInt(t, tc.expr, 0, tc.want)
	}
}

func TestEval_BigIntegers(t *testing.T) {
	got := evalAt(t, mustParse(t, "2^100"), 0)
	want, _ := new(big.Int).SetString("1267650600228229401496703205376", 10)
	assert.Equal(t, 0, got.Num().Cmp(want))

	got = evalAt(t, mustParse(t, "binomial(100000000000000000000, 2)"), 0)
	want, _ = new(big.Int).SetString("4999999999999999999950000000000000000000", 10)
	assert.Equal(t, 0, got.Num().Cmp(want))

	got = evalAt(t, mustParse(t, "123456789012345678901234567890 + n"), 1)
	want, _ = new(big.Int).SetString("123456789012345678901234567891", 10)
	assert.Equal(t, 0, got.Num().Cmp(want))
}

func TestEval_Sqrtint(t *testing.T) {
	square := mustParse(t, "sqrtint(n*n)")
	below := mustParse(t, "sqrtint(n*n + 2*n)")
	step := int64(1)
	if testing.Short() {
		step = 997
	}
	for k := int64(0); k <= 1000000; k += step {
		assert.Equal(t, 0, evalAt(t, square, k).Cmp(new(big.Rat).SetInt64(k)), "k=%d", k)
		assert.Equal(t, 0, evalAt(t, below, k).Cmp(new(big.Rat).SetInt64(k)), "k=%d", k)
	}
}

func TestEval_GCD(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"gcd(12, 0)", 12},
		{"gcd(0, 18)", 18},
		{"gcd(12, 18)", 6},
		{"gcd(18, 12)", 6},
		{"gcd(-4, 6)", 2},
		{"gcd(4, -6)", 2},
		{"gcd(0, 0)", 0},
	}
	for _, tc := range cases {
		assertEvalInt(t, tc.expr, 0, tc.want)
	}
}

func TestEval_Sumdigits(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"sumdigits(0)", 0},
		{"sumdigits(255)", 12},
		{"sumdigits(255, 16)", 30},
		{"sumdigits(-255)", 12},
		{"sumdigits(7, 2)", 3},
		{"sumdigits(99999999999999999999)", 180},
	}
	for _, tc := range cases {
		assertEvalInt(t, tc.expr, 0, tc.want)
	}
}

func TestSumDigits(t *testing.T) {
	s, err := SumDigits(big.NewInt(255), big.NewInt(16))
	require.NoError(t, err)
	assert.Equal(t, int64(30), s.Int64())

	s, err = SumDigits(big.NewInt(0), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Int64())

	for _, base := range []int64{1, 0, -10} {
		_, err := SumDigits(big.NewInt(5), big.NewInt(base))
		assert.ErrorIs(t, err, ErrInvalidBase, "base %d", base)
	}
}

func TestEval_Errors(t *testing.T) {
	cases := []struct {
		expr string
		n    int64
		err  error
	}{
		{"1/(n-1)", 1, ErrDivisionByZero},
		{"n/0", 5, ErrDivisionByZero},
		{"floor(1, 2)", 0, ErrArity},
		{"binomial(n)", 0, ErrArity},
		{"gcd(1)", 0, ErrArity},
		{"sumdigits(1, 2, 3)", 0, ErrArity},
		{"binomial(n/2, 1)", 1, ErrNonIntegerArgument},
		{"gcd(1/2, 1)", 0, ErrNonIntegerArgument},
		{"sqrtint(1/2)", 0, ErrNonIntegerArgument},
		{"sqrtint(n)", -1, ErrNegativeArgument},
		{"sumdigits(n, 1)", 5, ErrInvalidBase},
		{"2^5000", 0, ErrExponentRange},
	}
	for _, tc := range cases {
		_, err := Eval(mustParse(t, tc.expr), big.NewInt(tc.n))
		assert.ErrorIs(t, err, tc.err, "%s at n=%d", tc.expr, tc.n)
	}
}

func TestEval_ArityCheckedBeforeArguments(t *testing.T) {
	_, err := Eval(mustParse(t, "floor(1/0, 2)"), big.NewInt(0))
	assert.ErrorIs(t, err, ErrArity)
}

func TestEval_Power(t *testing.T) {
	pow := func(base, exp int64) Node {
		return &BinaryNode{Op: OpPow, Left: &NumberNode{Val: big.NewInt(base)}, Right: &NumberNode{Val: big.NewInt(exp)}}
	}

	v, err := Eval(pow(0, 0), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "1", v.RatString())

	v, err = Eval(pow(2, -2), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "1/4", v.RatString())

	v, err = Eval(pow(-3, 3), big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "-27", v.RatString())

	_, err = Eval(pow(0, -1), big.NewInt(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(pow(2, MaxExponent+1), big.NewInt(0))
	assert.ErrorIs(t, err, ErrExponentRange)

	_, err = Eval(pow(2, -MaxExponent-1), big.NewInt(0))
	assert.ErrorIs(t, err, ErrExponentRange)

	// (1/2)^3
	half := &BinaryNode{Op: OpDiv, Left: &NumberNode{Val: big.NewInt(1)}, Right: &NumberNode{Val: big.NewInt(2)}}
	v, err = Eval(&BinaryNode{Op: OpPow, Left: half, Right: &NumberNode{Val: big.NewInt(3)}}, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "1/8", v.RatString())
}

type bogusNode struct{ VarNode }

func TestEval_UnknownNodes(t *testing.T) {
	_, err := Eval(&bogusNode{}, big.NewInt(0))
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = Eval(&FuncNode{Func: Func(99), Args: []Node{&VarNode{}}}, big.NewInt(0))
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestEval_DoesNotMutateTree(t *testing.T) {
	node := mustParse(t, "-(n+1)^2 + 3*n")
	before := node.String()
	for n := int64(-3); n <= 3; n++ {
		evalAt(t, node, n)
	}
	assert.Equal(t, before, node.String())
}

func TestEval_Concurrent(t *testing.T) {
	node := mustParse(t, "binomial(n, 3) + floor(n/7) - sumdigits(n^3) + gcd(n, 30)")
	want := make([]*big.Rat, 64)
	for i := range want {
		want[i] = evalAt(t, node, int64(i))
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(want))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range want {
				got, err := Eval(node, big.NewInt(int64(i)))
				if err != nil || got.Cmp(want[i]) != 0 {
					errs <- node.String()
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	assert.Empty(t, errs)
}
