// Package corpus extracts candidate closed forms from the LODA and OEIS
// formula exports and loads the offsets and terms used to check them.
package corpus

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/wildfunctions/formula_miner/pkg/formula"
)

const maxLineBytes = 16 << 20

var (
	lodaLineRe     = regexp.MustCompile(`(?i)^(A\d{6}):\s*a\(n\)\s*=\s*(.+)$`)
	initialTermsRe = regexp.MustCompile(`\ba\(\d+\)\s*=`)
)

// newScanner returns a line scanner that tolerates very long records.
func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineBytes)
	return s
}

// LODACandidate extracts the closed form from one line of the LODA export,
// e.g. "A000217: a(n) = binomial(n+1,2)". Lines that define initial terms
// are rejected, and anything after the first comma outside parentheses
// (initial conditions, extra recurrences) is cut.
func LODACandidate(line string) (id, text string, ok bool) {
	m := lodaLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	id, text = m[1], m[2]
	if initialTermsRe.MatchString(text) {
		return "", "", false
	}
	return id, strings.TrimSpace(cutTopLevelComma(text)), true
}

// cutTopLevelComma returns s up to its first comma at parenthesis depth 0.
func cutTopLevelComma(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}

// ScanLODA parses every usable formula in a LODA export. Sequences in deny
// are skipped.
func ScanLODA(r io.Reader, deny map[string]bool) ([]*formula.Formula, error) {
	var out []*formula.Formula
	var lines, rejected int
	s := newScanner(r)
	for s.Scan() {
		lines++
		id, text, ok := LODACandidate(s.Text())
		if !ok || deny[id] {
			continue
		}
		f := formula.Parse(id, formula.SourceLODA, text)
		if f == nil {
			rejected++
			continue
		}
		out = append(out, f)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading LODA formulas")
	}
	glog.V(1).Infof("LODA: %d lines, %d formulas, %d candidates rejected", lines, len(out), rejected)
	return out, nil
}
