package engine

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all parameters for a validation run. File names are
// relative to DataDir unless absolute.
type Config struct {
	DataDir      string   `yaml:"data_dir" json:"data_dir"`
	LODAFile     string   `yaml:"loda_file" json:"loda_file"`
	OEISFile     string   `yaml:"oeis_file" json:"oeis_file"`
	OffsetsFile  string   `yaml:"offsets_file" json:"offsets_file"`
	StrippedFile string   `yaml:"stripped_file" json:"stripped_file"`
	MaxTerms     int      `yaml:"max_terms" json:"max_terms"`         // terms loaded per sequence
	CompareTerms int      `yaml:"compare_terms" json:"compare_terms"` // terms compared per formula
	Workers      int      `yaml:"workers" json:"workers"`
	Format       string   `yaml:"format" json:"format"` // "text", "json" or "latex"
	Verbose      bool     `yaml:"verbose" json:"verbose"`
	DenyLODA     []string `yaml:"deny_loda" json:"deny_loda,omitempty"`
	DenyOEIS     []string `yaml:"deny_oeis" json:"deny_oeis,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:      "data",
		LODAFile:     "formulas-loda.txt",
		OEISFile:     "formulas-oeis.txt",
		OffsetsFile:  "offsets",
		StrippedFile: "stripped",
		MaxTerms:     6,
		CompareTerms: 5,
		Workers:      runtime.NumCPU(),
		Format:       "text",
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var result error
	for _, field := range []struct{ name, value string }{
		{"loda_file", c.LODAFile},
		{"oeis_file", c.OEISFile},
		{"offsets_file", c.OffsetsFile},
		{"stripped_file", c.StrippedFile},
	} {
		if field.value == "" {
			result = multierror.Append(result, errors.Errorf("%s must be set", field.name))
		}
	}
	if c.MaxTerms < 1 {
		result = multierror.Append(result, errors.Errorf("max_terms must be positive, got %d", c.MaxTerms))
	}
	if c.CompareTerms < 1 || c.CompareTerms > c.MaxTerms {
		result = multierror.Append(result, errors.Errorf("compare_terms must be in [1, max_terms], got %d", c.CompareTerms))
	}
	if c.Workers < 1 {
		result = multierror.Append(result, errors.Errorf("workers must be positive, got %d", c.Workers))
	}
	switch c.Format {
	case "text", "json", "latex":
	default:
		result = multierror.Append(result, errors.Errorf("unknown format %q", c.Format))
	}
	return result
}

// Path resolves a data file name against DataDir.
func (c Config) Path(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func denySet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
