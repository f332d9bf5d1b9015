package corpus

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/wildfunctions/formula_miner/pkg/formula"
)

// ParsedMark is appended to annotated lines whose formula parses.
const ParsedMark = " ✅"

var anyFormulaRe = regexp.MustCompile(`(?i)a\(n\)\s*=\s*(.+)`)

// Stats counts the formula lines seen by an annotator and how many parsed.
type Stats struct {
	Parsed int `json:"parsed"`
	Total  int `json:"total"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d formulas parsed", s.Parsed, s.Total)
}

// AnnotateLODA copies a LODA export from r to w, marking every line whose
// full right-hand side parses.
func AnnotateLODA(r io.Reader, w io.Writer) (Stats, error) {
	return annotate(r, w, func(line string, _ *string) (string, string, bool) {
		m := lodaLineRe.FindStringSubmatch(line)
		if m == nil {
			return "", "", false
		}
		return m[1], m[2], true
	}, formula.SourceLODA)
}

// AnnotateOEIS copies an OEIS formulas export from r to w, marking every
// header or continuation line whose a(n) expression parses. Unlike
// ScanOEIS it applies none of the conditional-formula rejections.
func AnnotateOEIS(r io.Reader, w io.Writer) (Stats, error) {
	return annotate(r, w, func(line string, current *string) (string, string, bool) {
		var text string
		if m := oeisHeaderRe.FindStringSubmatch(line); m != nil {
			*current, text = m[1], m[2]
		} else if strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != "" {
			text = strings.TrimSpace(line)
		} else {
			return "", "", false
		}
		m := anyFormulaRe.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		return *current, strings.TrimRight(strings.TrimSpace(m[1]), ".;"), true
	}, formula.SourceOEIS)
}

// extractFunc returns the sequence id and candidate of a formula line.
// current carries the id of the enclosing record between calls.
type extractFunc func(line string, current *string) (id, text string, ok bool)

func annotate(r io.Reader, w io.Writer, extract extractFunc, source formula.Source) (Stats, error) {
	var st Stats
	var current string
	bw := bufio.NewWriter(w)
	s := newScanner(r)
	for s.Scan() {
		line := s.Text()
		mark := ""
		if id, text, ok := extract(line, &current); ok {
			st.Total++
			if formula.Parse(id, source, text) != nil {
				st.Parsed++
				mark = ParsedMark
			}
		}
		if _, err := fmt.Fprintf(bw, "%s%s\n", line, mark); err != nil {
			return st, errors.Wrap(err, "writing annotated line")
		}
	}
	if err := s.Err(); err != nil {
		return st, errors.Wrapf(err, "reading %s formulas", source)
	}
	return st, errors.Wrap(bw.Flush(), "flushing annotated output")
}
