// Package plogroup resolves raw projector groups plus user configuration
// into a list of PrGroup values carrying a correlation flag, a shell label,
// and a rectangular transformation T.
package plogroup

import (
	"fmt"
	"strconv"
	"strings"
)

// plogroupErrorf wraps an underlying error with call-site context.
func plogroupErrorf(tag string, err error) error {
	return fmt.Errorf("plogroup.%s: %w", tag, err)
}

// Shell is the closed enumeration of orbital-shell labels.
type Shell string

const (
	ShellS    Shell = "s"
	ShellP    Shell = "p"
	ShellD    Shell = "d"
	ShellF    Shell = "f"
	ShellDT2g Shell = "d_t2g"
	ShellDEg  Shell = "d_eg"
)

// shellToL maps a shell label to its angular momentum quantum number.
var shellToL = map[Shell]int{
	ShellS:    0,
	ShellP:    1,
	ShellD:    2,
	ShellF:    3,
	ShellDT2g: 2,
	ShellDEg:  2,
}

// defaultShells maps l to the shell label a raw (unconfigured) group
// defaults to.
var defaultShells = map[int]Shell{0: ShellS, 1: ShellP, 2: ShellD, 3: ShellF}

// DefaultShell returns the default shell label for angular momentum l.
func DefaultShell(l int) Shell { return defaultShells[l] }

// PrTrait is one raw projector on the projector axis.
type PrTrait struct {
	Site  int
	L     int
	M     int
	Label string
}

// PrGroup is a resolved projector group: a site, an angular momentum,
// whether it is correlated, its shell label, the indices it owns on the
// raw projector axis, and the rectangular transformation T (rows=d,
// cols=2l+1) applied during rotation.
type PrGroup struct {
	Site  int
	L     int
	Corr  bool
	Shell Shell
	Pr    []int
	T     [][]complex128
}

// Config is the merged, pre-validated configuration driving group
// resolution: one atom/shell pair per configured correlated site.
type Config struct {
	Atoms  []string // each entry contains a parseable site index
	Shells []Shell
	NSite  int
}

// validate checks the GroupConfig's internal consistency: nsite must
// equal len(atoms) == len(shells).
func (c Config) validate() error {
	if c.NSite != len(c.Atoms) || c.NSite != len(c.Shells) {
		return ErrConfigInconsistent
	}
	return nil
}

// parseSite extracts the integer site index embedded in an atoms[] entry.
func parseSite(atom string) (int, error) {
	site, err := strconv.Atoi(strings.TrimSpace(atom))
	if err != nil || site < 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadSiteIndex, atom)
	}
	return site, nil
}

// transformFor builds the rectangular T matrix for a shell label, per the
// table in spec §4.2. Indices in the spec table are one-based; translated
// to zero-based here.
func transformFor(shell Shell) ([][]complex128, error) {
	identity := func(n int) [][]complex128 {
		m := make([][]complex128, n)
		for i := range m {
			m[i] = make([]complex128, n)
			m[i][i] = 1
		}
		return m
	}
	selector := func(rows, cols int, ones [][2]int) [][]complex128 {
		m := make([][]complex128, rows)
		for i := range m {
			m[i] = make([]complex128, cols)
		}
		for _, rc := range ones {
			m[rc[0]][rc[1]] = 1
		}
		return m
	}

	switch shell {
	case ShellS:
		return identity(1), nil
	case ShellP:
		return identity(3), nil
	case ShellD:
		return identity(5), nil
	case ShellF:
		return identity(7), nil
	case ShellDT2g:
		// 3x5 selector with ones at one-based (1,1),(2,2),(3,4).
		return selector(3, 5, [][2]int{{0, 0}, {1, 1}, {2, 3}}), nil
	case ShellDEg:
		// 2x5 selector with ones at one-based (1,3),(2,5).
		// Decided per SPEC_FULL.md §5: implemented exactly as specified,
		// mapping raw channel ordering (dxy,dyz,dz2,dxz,dx2-y2) -> (dz2,dx2-y2).
		return selector(2, 5, [][2]int{{0, 2}, {1, 4}}), nil
	default:
		return nil, ErrUnknownShell
	}
}

// Resolve merges raw groups with configuration to produce the final group
// list (spec §4.2).
//
// Stage 1 (Validate config): nsite must equal len(atoms) == len(shells).
// Stage 2 (Per-group invariant): 2l+1 == len(group.Pr) on entry.
// Stage 3 (Match): for each raw group, if a configured site/shell maps to
// the same (site, l), mark it correlated and adopt the configured shell.
// Stage 4 (Materialize): build T from the shell table; unconfigured groups
// get T = I_{2l+1} (identity on their default shell).
func Resolve(raw []PrGroup, cfg Config) ([]PrGroup, error) {
	if err := cfg.validate(); err != nil {
		return nil, plogroupErrorf("Resolve", err)
	}

	type site struct {
		site int
		l    int
	}
	configured := make(map[site]Shell, cfg.NSite)
	for i := 0; i < cfg.NSite; i++ {
		s, err := parseSite(cfg.Atoms[i])
		if err != nil {
			return nil, plogroupErrorf("Resolve", err)
		}
		l, ok := shellToL[cfg.Shells[i]]
		if !ok {
			return nil, plogroupErrorf("Resolve", ErrUnknownShell)
		}
		configured[site{s, l}] = cfg.Shells[i]
	}

	out := make([]PrGroup, len(raw))
	for i, g := range raw {
		if len(g.Pr) != 2*g.L+1 {
			return nil, plogroupErrorf("Resolve", ErrTraitCountMismatch)
		}

		shell := DefaultShell(g.L)
		corr := false
		if cfgShell, ok := configured[site{g.Site, g.L}]; ok {
			shell = cfgShell
			corr = true
		}

		T, err := transformFor(shell)
		if err != nil {
			return nil, plogroupErrorf("Resolve", err)
		}

		out[i] = PrGroup{
			Site:  g.Site,
			L:     g.L,
			Corr:  corr,
			Shell: shell,
			Pr:    g.Pr,
			T:     T,
		}
	}
	return out, nil
}

// Dim returns the output dimension d of a group's transformation (rows(T)).
func (g PrGroup) Dim() int { return len(g.T) }
