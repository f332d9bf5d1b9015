package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/wildfunctions/formula_miner/pkg/corpus"
	"github.com/wildfunctions/formula_miner/pkg/engine"
	"github.com/wildfunctions/formula_miner/pkg/formula"
)

func main() {
	app := &cli.App{
		Name:  "formula_miner",
		Usage: "Parse and check closed forms mined from the OEIS and LODA formula exports.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "verbosity", Usage: "glog -v level"},
		},
		Before: func(c *cli.Context) error {
			// glog registers its flags on the standard flag set.
			if err := flag.Set("logtostderr", "true"); err != nil {
				return err
			}
			return flag.Set("v", strconv.Itoa(c.Int("verbosity")))
		},
		After: func(c *cli.Context) error {
			glog.Flush()
			return nil
		},
		Commands: []*cli.Command{
			checkCommand(),
			annotateCommand(),
			evalCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkCommand() *cli.Command {
	def := engine.DefaultConfig()
	return &cli.Command{
		Name:  "check",
		Usage: "Verify parsed formulas against the leading terms of their sequences.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "data-dir", Value: def.DataDir, Usage: "directory holding the corpora, offsets and stripped files"},
			&cli.IntFlag{Name: "workers", Value: def.Workers, Usage: "number of parallel workers"},
			&cli.IntFlag{Name: "max-terms", Value: def.MaxTerms, Usage: "terms loaded per sequence"},
			&cli.IntFlag{Name: "compare-terms", Value: def.CompareTerms, Usage: "terms compared per formula"},
			&cli.StringFlag{Name: "format", Value: def.Format, Usage: "output format (text, json, latex)"},
			&cli.BoolFlag{Name: "verbose", Usage: "list every mismatch"},
		},
		Action: func(c *cli.Context) error {
			cfg := engine.DefaultConfig()
			if path := c.String("config"); path != "" {
				var err error
				if cfg, err = engine.LoadConfig(path); err != nil {
					return err
				}
			}
			if c.IsSet("data-dir") {
				cfg.DataDir = c.String("data-dir")
			}
			if c.IsSet("workers") {
				cfg.Workers = c.Int("workers")
			}
			if c.IsSet("max-terms") {
				cfg.MaxTerms = c.Int("max-terms")
			}
			if c.IsSet("compare-terms") {
				cfg.CompareTerms = c.Int("compare-terms")
			}
			if c.IsSet("format") {
				cfg.Format = c.String("format")
			}
			if c.IsSet("verbose") {
				cfg.Verbose = c.Bool("verbose")
			}

			e, err := engine.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()
			report, err := e.Run(ctx)
			if err != nil {
				return err
			}
			if err := engine.Write(os.Stdout, report); err != nil {
				return errors.Wrap(err, "writing report")
			}
			if len(report.Mismatches) > 0 {
				return cli.Exit(fmt.Sprintf("%d formula mismatches", len(report.Mismatches)), 2)
			}
			return nil
		},
	}
}

func annotateCommand() *cli.Command {
	def := engine.DefaultConfig()
	return &cli.Command{
		Name:  "annotate",
		Usage: "Copy both corpora, marking every line whose formula parses.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data-dir", Value: def.DataDir},
			&cli.StringFlag{Name: "out-dir", Value: "results"},
		},
		Action: func(c *cli.Context) error {
			cfg := def
			cfg.DataDir = c.String("data-dir")
			outDir := c.String("out-dir")
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", outDir)
			}
			jobs := []struct {
				in, out string
				fn      annotator
			}{
				{cfg.Path(cfg.LODAFile), filepath.Join(outDir, "parsed-formulas-loda.txt"), corpus.AnnotateLODA},
				{cfg.Path(cfg.OEISFile), filepath.Join(outDir, "parsed-formulas-oeis.txt"), corpus.AnnotateOEIS},
			}
			for _, j := range jobs {
				st, err := annotateFile(j.in, j.out, j.fn)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", filepath.Base(j.in), st)
				size := "unknown size"
				if fi, err := os.Stat(j.out); err == nil {
					size = humanize.Bytes(uint64(fi.Size()))
				}
				fmt.Printf("  Saved to: %s (%s)\n", j.out, size)
			}
			return nil
		},
	}
}

type annotator func(io.Reader, io.Writer) (corpus.Stats, error)

func annotateFile(in, out string, fn annotator) (corpus.Stats, error) {
	r, err := os.Open(in)
	if err != nil {
		return corpus.Stats{}, errors.Wrapf(err, "opening %s", in)
	}
	defer r.Close()
	w, err := os.Create(out)
	if err != nil {
		return corpus.Stats{}, errors.Wrapf(err, "creating %s", out)
	}
	st, err := fn(r, w)
	if cerr := w.Close(); err == nil {
		err = errors.Wrapf(cerr, "closing %s", out)
	}
	return st, err
}

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate an expression for a range of n.",
		ArgsUsage: "<expression>",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "from", Value: 0},
			&cli.Int64Flag{Name: "to", Value: 10},
			&cli.BoolFlag{Name: "tree", Usage: "print the parsed tree"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one expression", 1)
			}
			f, err := formula.Compile("", formula.SourceLODA, c.Args().First())
			if err != nil {
				return errors.Wrap(err, "parsing expression")
			}
			if c.Int64("to") < c.Int64("from") {
				return cli.Exit("--to must not be below --from", 1)
			}
			engine.WriteEval(os.Stdout, f, c.Int64("from"), c.Int64("to"), c.Bool("tree"))
			return nil
		},
	}
}
