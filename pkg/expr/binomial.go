package expr

import "math/big"

// binomialCase names the branch taken when remapping binomial arguments.
type binomialCase int

const (
	binomialInfinite binomialCase = iota
	binomialNegN                  // n < 0, k >= 0
	binomialNegNGeK               // n < 0, k < 0, n >= k
	binomialNegNLtK               // n < 0, k < 0, n < k
	binomialNonNegN               // n >= 0
)

// binomialPlan is the result of remapping (n, k) onto an ordinary binomial
// coefficient: the answer is Sign * C(N, K), or 0 when Zero is set.
type binomialPlan struct {
	Case binomialCase
	Sign int
	N, K *big.Int
	Zero bool
}

// planBinomial applies the sign and argument rules of the generalized
// binomial coefficient for negative arguments (Kronenburg,
// arXiv:1105.3689). A nil argument stands for infinity.
func planBinomial(n, k *big.Int) binomialPlan {
	if n == nil || k == nil {
		return binomialPlan{Case: binomialInfinite}
	}

	p := binomialPlan{Case: binomialNonNegN, Sign: 1}
	if n.Sign() < 0 {
		switch {
		case k.Sign() >= 0:
			// C(n, k) = (-1)^k C(k-n-1, k)
			p.Case = binomialNegN
			if k.Bit(0) == 1 {
				p.Sign = -1
			}
			p.N = new(big.Int).Sub(k, n)
			p.N.Sub(p.N, bigOne)
			p.K = new(big.Int).Set(k)

		case n.Cmp(k) >= 0:
			// C(n, k) = (-1)^(n-k) C(-k-1, n-k)
			p.Case = binomialNegNGeK
			d := new(big.Int).Sub(n, k)
			if d.Bit(0) == 1 {
				p.Sign = -1
			}
			p.N = new(big.Int).Neg(k)
			p.N.Sub(p.N, bigOne)
			p.K = d

		default:
			p.Case = binomialNegNLtK
			p.Zero = true
			return p
		}
	} else {
		p.N = new(big.Int).Set(n)
		p.K = new(big.Int).Set(k)
	}

	if p.K.Sign() < 0 || p.N.Cmp(p.K) < 0 {
		p.Zero = true
		return p
	}
	// C(n, k) == C(n, n-k); keep the smaller k.
	if twoK := new(big.Int).Lsh(p.K, 1); p.N.Cmp(twoK) < 0 {
		p.K.Sub(p.N, p.K)
	}
	return p
}

// Binomial returns the generalized binomial coefficient C(n, k) for all
// signed n and k. If either argument is nil (infinite) the result is nil.
func Binomial(n, k *big.Int) *big.Int {
	p := planBinomial(n, k)
	if p.Case == binomialInfinite {
		return nil
	}
	if p.Zero {
		return new(big.Int)
	}
	c := ordinaryBinomial(p.N, p.K)
	if p.Sign < 0 {
		c.Neg(c)
	}
	return c
}

// ordinaryBinomial computes C(n, k) for 0 <= k <= n. n may be arbitrarily
// large; it returns 0 when k itself does not fit in an int64.
func ordinaryBinomial(n, k *big.Int) *big.Int {
	if !k.IsInt64() {
		return new(big.Int)
	}
	if n.IsInt64() {
		return new(big.Int).Binomial(n.Int64(), k.Int64())
	}
	// C(n, k) = prod_{i=1..k} (n-k+i) / i; every partial product is exact.
	c := big.NewInt(1)
	f := new(big.Int).Sub(n, k)
	i := new(big.Int)
	for j := int64(1); j <= k.Int64(); j++ {
		f.Add(f, bigOne)
		i.SetInt64(j)
		c.Mul(c, f)
		c.Quo(c, i)
	}
	return c
}
