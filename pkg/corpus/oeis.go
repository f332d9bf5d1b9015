package corpus

import (
	"io"
	"regexp"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/wildfunctions/formula_miner/pkg/formula"
)

var (
	oeisHeaderRe  = regexp.MustCompile(`^(A\d{6}):\s*(.+)$`)
	oeisFormulaRe = regexp.MustCompile(`(?i)a\(n\)\s*=`)

	// "A352757(n) - a(n) = 2*n - 1" relates two sequences.
	relationalRe = regexp.MustCompile(`(?i)A\d{6}\([^)]+\)\s*[-+*/^]\s*a\(n\)`)

	// Text before "a(n) =" that restricts where the formula holds.
	prefixRejects = []*regexp.Regexp{
		regexp.MustCompile(`\bfor\s+(?:all\s+)?n\s*(?:[<>]=?|!=)\s*-?\d+\s*[,;]?`),
		regexp.MustCompile(`\bfor\s+n\s+mod\s+`),
		regexp.MustCompile(`\bk\s*=\s*\d+\s*:`),
		regexp.MustCompile(`\bfor\s+n\s*=\s*\d+\s*m(\s*\+\s*\d+)?\b`),
		regexp.MustCompile(`\bfor\b[^,]{0,80}\bn\b[^,]{0,10},`),
		regexp.MustCompile(`\bif\b`),
		regexp.MustCompile(`\b(diagonal|column|row)\b`),
	}

	// Text after "a(n) =" that restricts where the formula holds.
	suffixRejects = []*regexp.Regexp{
		regexp.MustCompile(`\bfor\s+n\s*[<>!=]`),
		regexp.MustCompile(`\bfor\s+n\s+mod\b`),
		regexp.MustCompile(`\bfor\s+n\s+(even|odd)\b`),
	}

	polynomialRe = regexp.MustCompile(`^[0-9nN+\-*^()/\s]+$`)
	highDegreeRe = regexp.MustCompile(`\^([1-9]\d+)`)
)

// OEISCandidate extracts a conservative closed form from one OEIS formula
// line. Only plain polynomial-style expressions that hold for every n are
// accepted: conditional, piecewise, relational and table formulas are
// rejected, as are exponents of 10 or more and forms without + * or ^.
func OEISCandidate(text string) (string, bool) {
	loc := oeisFormulaRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	if relationalRe.MatchString(text) {
		return "", false
	}
	prefix := strings.ToLower(text[:loc[0]])
	for _, re := range prefixRejects {
		if re.MatchString(prefix) {
			return "", false
		}
	}
	suffix := strings.ToLower(text[loc[1]:])
	for _, re := range suffixRejects {
		if re.MatchString(suffix) {
			return "", false
		}
	}

	e := strings.TrimRight(strings.TrimSpace(text[loc[1]:]), ".;")
	if !polynomialRe.MatchString(e) {
		return "", false
	}
	if !strings.ContainsAny(e, "nN") {
		return "", false
	}
	if highDegreeRe.MatchString(e) {
		return "", false
	}
	if !strings.ContainsAny(e, "+*^") {
		return "", false
	}
	return e, true
}

// ScanOEIS parses every usable formula in an OEIS formulas export. A record
// starts with an "Annnnnn: " header line and continues with lines indented
// by two spaces. A formula line ending in "otherwise:" suppresses the next
// a(n) line of the same record, which only holds on the remaining cases.
func ScanOEIS(r io.Reader, deny map[string]bool) ([]*formula.Formula, error) {
	var out []*formula.Formula
	var current string
	skipNext := false

	emit := func(text string) {
		e, ok := OEISCandidate(text)
		if !ok {
			return
		}
		if f := formula.Parse(current, formula.SourceOEIS, e); f != nil {
			out = append(out, f)
		}
	}

	s := newScanner(r)
	for s.Scan() {
		line := s.Text()
		if m := oeisHeaderRe.FindStringSubmatch(line); m != nil {
			current = m[1]
			skipNext = false
			if deny[current] {
				current = ""
				continue
			}
			rest := m[2]
			emit(strings.TrimSpace(rest))
			if strings.HasSuffix(strings.TrimRight(rest, " \t"), "otherwise:") {
				skipNext = true
			}
			continue
		}
		if current == "" || !strings.HasPrefix(line, "  ") {
			continue
		}
		cont := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(cont), "a(n) =") {
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		emit(cont)
		if strings.HasSuffix(cont, "otherwise:") {
			skipNext = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading OEIS formulas")
	}
	glog.V(1).Infof("OEIS: %d formulas", len(out))
	return out, nil
}
