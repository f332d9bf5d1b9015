package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wildfunctions/formula_miner/pkg/expr"
	"github.com/wildfunctions/formula_miner/pkg/formula"
	"github.com/wildfunctions/formula_miner/pkg/sequence"
)

// maxMismatchRows caps the mismatch samples in the text report.
const maxMismatchRows = 5

// Verified is a formula that agreed with every compared term.
type Verified struct {
	SequenceID string         `json:"id"`
	Source     formula.Source `json:"source"`
	Expression string         `json:"expr"`
	LaTeX      string         `json:"latex"`
}

// Report summarizes a validation run.
type Report struct {
	Config      Config              `json:"config"`
	ParsedLODA  int                 `json:"parsed_loda"`
	ParsedOEIS  int                 `json:"parsed_oeis"`
	WithTerms   int                 `json:"with_terms"`
	Checked     int                 `json:"checked"`
	CheckedLODA int                 `json:"checked_loda"`
	CheckedOEIS int                 `json:"checked_oeis"`
	Comparisons int                 `json:"comparisons"`
	Mismatches  []sequence.Mismatch `json:"mismatches,omitempty"`
	Verified    []Verified          `json:"verified,omitempty"`
	Exercised   []string            `json:"exercised_functions,omitempty"`
	Unexercised []string            `json:"unexercised_functions,omitempty"`
}

// Write renders r in the format named by r.Config.Format.
func Write(w io.Writer, r Report) error {
	switch r.Config.Format {
	case "json":
		return WriteJSON(w, r)
	case "latex":
		WriteLatex(w, r)
	default:
		WriteText(w, r)
	}
	return nil
}

// WriteText writes the report in human-readable format.
func WriteText(w io.Writer, r Report) {
	fmt.Fprintf(w, "Parsed formulas: %d; with OEIS terms: %d\n", r.ParsedLODA+r.ParsedOEIS, r.WithTerms)
	fmt.Fprintf(w, "Parsed LODA: %d; Parsed OEIS: %d\n", r.ParsedLODA, r.ParsedOEIS)
	fmt.Fprintf(w, "Checked sequences: %d; LODA: %d; OEIS: %d\n", r.Checked, r.CheckedLODA, r.CheckedOEIS)
	fmt.Fprintf(w, "Comparisons: %d; mismatches: %d\n", r.Comparisons, len(r.Mismatches))
	if len(r.Unexercised) > 0 {
		fmt.Fprintf(w, "Supported functions not exercised by dataset: %s\n", strings.Join(r.Unexercised, ", "))
	}
	if len(r.Mismatches) == 0 {
		return
	}

	rows := r.Mismatches
	if !r.Config.Verbose && len(rows) > maxMismatchRows {
		rows = rows[:maxMismatchRows]
	}
	fmt.Fprintf(w, "\nSample mismatches (%d of %d):\n", len(rows), len(r.Mismatches))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Source", "n", "Expression", "Got", "Expected"})
	table.SetAutoWrapText(false)
	for _, m := range rows {
		table.Append([]string{m.SequenceID, string(m.Source), strconv.FormatInt(m.N, 10), m.Expression, m.Got, m.Expected})
	}
	table.Render()
}

// WriteJSON writes the report as JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.NewReplacer("_", `\_`, "&", `\&`, "%", `\%`, "#", `\#`).Replace(s)
}

// WriteLatex writes a compilable LaTeX document listing the verified
// formulas.
func WriteLatex(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintln(w, `\title{Verified closed forms}`)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Checked: %d (LODA %d, OEIS %d), comparisons: %d, mismatches: %d\\\\\n",
		r.Checked, r.CheckedLODA, r.CheckedOEIS, r.Comparisons, len(r.Mismatches))
	fmt.Fprintf(w, "Terms compared per formula: %d\n\n", r.Config.CompareTerms)

	for _, v := range r.Verified {
		fmt.Fprintf(w, "\\subsection*{%s (%s)}\n", latexEscape(v.SequenceID), latexEscape(string(v.Source)))
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  %s\n", v.LaTeX)
		fmt.Fprintln(w, `\]`)
	}

	fmt.Fprintln(w, `\end{document}`)
}

// WriteEval tabulates f over n = from..to. Non-integer values also show the
// integer they snap to; evaluation errors are reported per row. With tree
// set, the parsed form and its shape are printed first.
func WriteEval(w io.Writer, f *formula.Formula, from, to int64, tree bool) {
	if tree {
		fmt.Fprintf(w, "tree:  %s\n", f.Root)
		fmt.Fprintf(w, "latex: %s\n", f.LaTeX())
		fmt.Fprintf(w, "nodes: %d, depth: %d, constant: %t\n", f.Root.NodeCount(), f.Root.Depth(), !expr.ContainsVar(f.Root))
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"n", "a(n)", "snapped"})
	table.SetAutoWrapText(false)
	for n := from; n <= to; n++ {
		row := []string{strconv.FormatInt(n, 10), "", ""}
		v, err := f.Evaluate(n)
		switch {
		case err != nil:
			row[1] = "error: " + err.Error()
		case v.IsInt():
			row[1] = v.String()
			row[2] = v.String()
		default:
			row[1] = v.String()
			row[2] = v.Snap().String()
		}
		table.Append(row)
	}
	table.Render()
}
