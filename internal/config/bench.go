package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isomers/pkg/errors"
)

// Bench is a benchmark plan for the bench command:
//
//	trials = 1000
//	warmup = 10
//
//	[[case]]
//	vertices = 20
//	degree = 4
//
//	[[case]]
//	vertices = 40
//	degree = 4
//	workers = 8
type Bench struct {
	Trials int         `toml:"trials"`
	Warmup int         `toml:"warmup"`
	Cases  []BenchCase `toml:"case"`
}

// BenchCase is one timed count.
type BenchCase struct {
	Vertices int `toml:"vertices"`
	Degree   int `toml:"degree"`
	Workers  int `toml:"workers"`
}

// DefaultBench times one 20-vertex alkane count.
func DefaultBench() Bench {
	return Bench{
		Trials: 1000,
		Cases:  []BenchCase{{Vertices: 20, Degree: 4}},
	}
}

// LoadBench reads a benchmark plan.
func LoadBench(path string) (Bench, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Bench{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "bench file %s not found", path)
	}
	if err != nil {
		return Bench{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read bench file %s", path)
	}
	return ParseBench(data)
}

// ParseBench decodes and validates a benchmark plan.
func ParseBench(data []byte) (Bench, error) {
	var b Bench
	md, err := toml.Decode(string(data), &b)
	if err != nil {
		return Bench{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse bench file")
	}
	if len(md.Undecoded()) > 0 {
		return Bench{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in bench file: %v", md.Undecoded())
	}
	if b.Trials == 0 {
		b.Trials = 1
	}
	return b, b.Validate()
}

// Validate checks the plan.
func (b *Bench) Validate() error {
	if b.Trials < 1 || b.Warmup < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "trials must be positive and warmup non-negative")
	}
	if len(b.Cases) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "bench file has no [[case]] entries")
	}
	for i, c := range b.Cases {
		if c.Vertices < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "case %d: vertices must be at least 1", i+1)
		}
		if c.Degree < 1 && c.Vertices > 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "case %d: degree must be at least 1", i+1)
		}
		if c.Workers < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "case %d: workers must be non-negative", i+1)
		}
	}
	return nil
}
