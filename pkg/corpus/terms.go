package corpus

import (
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	offsetRe   = regexp.MustCompile(`^(A\d{6}):\s*(-?\d+)`)
	strippedRe = regexp.MustCompile(`^(A\d{6})\s*,(.*)$`)
)

// ReadOffsets reads an offsets file of "Annnnnn: <offset>" lines and returns
// the first index of each sequence.
func ReadOffsets(r io.Reader) (map[string]int64, error) {
	offsets := map[string]int64{}
	s := newScanner(r)
	for s.Scan() {
		m := offsetRe.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if m == nil {
			continue
		}
		off, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "offset for %s", m[1])
		}
		offsets[m[1]] = off
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading offsets")
	}
	return offsets, nil
}

// ReadTerms reads up to maxTerms leading terms per sequence from a
// "stripped" file ("Annnnnn ,t0,t1,t2,..." lines, '#' comments). Only
// sequences in ids are collected, and reading stops as soon as each of them
// has maxTerms terms; a nil ids collects every sequence.
func ReadTerms(r io.Reader, ids map[string]bool, maxTerms int) (map[string][]*big.Int, error) {
	terms := map[string][]*big.Int{}
	if ids != nil && len(ids) == 0 {
		return terms, nil
	}
	want := func(id string) bool { return ids == nil || ids[id] }
	complete := 0

	var current string
	s := newScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var chunk string
		switch {
		case strings.HasPrefix(line, "A"):
			current = ""
			m := strippedRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current, chunk = m[1], m[2]
		case current != "" && strings.HasPrefix(line, ","):
			chunk = line[1:]
		default:
			continue
		}
		if !want(current) || len(terms[current]) >= maxTerms {
			continue
		}
		buf := appendTerms(terms[current], chunk, maxTerms)
		if len(buf) == 0 {
			continue
		}
		terms[current] = buf
		if ids != nil && len(buf) >= maxTerms {
			complete++
			if complete == len(ids) {
				break
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading terms")
	}
	return terms, nil
}

// appendTerms parses the comma separated integers in chunk onto buf,
// stopping at maxTerms or at the first token that is not an integer.
func appendTerms(buf []*big.Int, chunk string, maxTerms int) []*big.Int {
	for _, tok := range strings.Split(chunk, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			break
		}
		buf = append(buf, v)
		if len(buf) >= maxTerms {
			break
		}
	}
	return buf
}
