// Package config holds the validated, process-free pipeline configuration
// (spec §9 "Configuration access": the source's process-wide dictionaries
// are reimplemented here as a plain struct threaded through the pipeline,
// with functional options replacing the per-field (value,required,type,doc)
// metadata).
package config

import (
	"fmt"

	"github.com/katalvlaran/ploadapt/plogroup"
	"github.com/katalvlaran/ploadapt/plowindow"
)

// configErrorf wraps an underlying error with call-site context.
func configErrorf(tag string, err error) error {
	return fmt.Errorf("config.%s: %w", tag, err)
}

// Smear selects the Brillouin-zone smearing/DOS method (spec §6); only
// SmearTetra gates the tetrahedron partial-DOS stage.
type Smear string

const (
	SmearTetra Smear = "tetra"
	SmearMP    Smear = "m-p"
	SmearGauss Smear = "gauss"
)

var knownSmears = map[Smear]bool{SmearTetra: true, SmearMP: true, SmearGauss: true}

// Config is the fully-resolved, validated configuration driving one
// pipeline run.
type Config struct {
	Window []plowindow.Value
	Group  plogroup.Config
	Smear  Smear
	Diag   bool // emit diagnostics (overlap, density matrix, Hamiltonian)
}

// Option mutates a Config under construction; New applies options in order
// and validates the result.
type Option func(*Config)

// WithWindow sets the raw window value list (length 2 or 2*|PG|).
func WithWindow(window ...plowindow.Value) Option {
	return func(c *Config) { c.Window = window }
}

// WithIntWindow is a convenience wrapper building a single broadcast
// integer window (lo,hi), one-based inclusive band indices.
func WithIntWindow(lo, hi int) Option {
	return func(c *Config) { c.Window = []plowindow.Value{plowindow.Int(lo), plowindow.Int(hi)} }
}

// WithEnergyWindow is a convenience wrapper building a single broadcast
// energy window (lo,hi).
func WithEnergyWindow(lo, hi float64) Option {
	return func(c *Config) { c.Window = []plowindow.Value{plowindow.Float(lo), plowindow.Float(hi)} }
}

// WithGroupConfig sets the atoms/shells/nsite triple driving group
// resolution (plogroup.Config).
func WithGroupConfig(atoms []string, shells []plogroup.Shell, nsite int) Option {
	return func(c *Config) {
		c.Group = plogroup.Config{Atoms: atoms, Shells: shells, NSite: nsite}
	}
}

// WithSmear sets the smearing/DOS method.
func WithSmear(s Smear) Option {
	return func(c *Config) { c.Smear = s }
}

// WithDiagnostics toggles the optional overlap/density-matrix/Hamiltonian
// stage (spec §4.7).
func WithDiagnostics(on bool) Option {
	return func(c *Config) { c.Diag = on }
}

// New builds and validates a Config from the given options.
//
// Stage 1 (Apply): run every option against a zero-valued Config.
// Stage 2 (Validate): window parity, group consistency, known smear method.
func New(opts ...Option) (Config, error) {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return Config{}, configErrorf("New", err)
	}
	return c, nil
}

func (c Config) validate() error {
	if len(c.Window)%2 != 0 {
		return ErrBadWindowLen
	}
	if c.Group.NSite != len(c.Group.Atoms) || c.Group.NSite != len(c.Group.Shells) {
		return ErrConfigInconsistent
	}
	if c.Smear != "" && !knownSmears[c.Smear] {
		return ErrUnknownSmear
	}
	return nil
}

// WantsDOS reports whether this configuration requests tetrahedron DOS
// output (spec §6: smear=="tetra" gates DOS).
func (c Config) WantsDOS() bool { return c.Smear == SmearTetra }
