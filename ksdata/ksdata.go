// Package ksdata holds the immutable Kohn-Sham inputs consumed by the PLO
// pipeline: band energies, projector amplitudes, k-point weights, and the
// optional occupations and tetrahedra used by diagnostics.
package ksdata

import (
	"fmt"
	"math"
)

// weightSumTol bounds how far Σw may drift from 1 before ErrBadWeight fires.
const weightSumTol = 1e-9

// ksdataErrorf wraps an underlying error with call-site context.
func ksdataErrorf(tag string, err error) error {
	return fmt.Errorf("ksdata.%s: %w", tag, err)
}

// Tetrahedron is one row of the tetrahedron mesh: Mult is the multiplicity
// and K holds the four corner k-point indices.
type Tetrahedron struct {
	Mult int
	K    [4]int
}

// KSData is the read-only container of raw Kohn-Sham quantities.
//
// Shapes:
//
//	Enk[b][k][s]          real band energies
//	Chipsi[p][b][k][s]    complex projector amplitudes
//	Weight[k]             real k-point weights, Σw = 1
//	Occupy[b][k][s]       optional occupations in [0, 2/nspin]; nil if absent
//	Tetra, Volt           optional tetrahedron mesh for DOS; Tetra nil if absent
//	Fermi                 the Fermi level subtracted by CalibrateFermi
type KSData struct {
	Enk    [][][]float64
	Chipsi [][][][]complex128
	Weight []float64
	Occupy [][][]float64
	Tetra  []Tetrahedron
	Volt   float64
	Fermi  float64
}

// NProj returns len(Chipsi), the projector-axis size.
func (d *KSData) NProj() int { return len(d.Chipsi) }

// NBand returns len(Enk), the number of bands.
func (d *KSData) NBand() int { return len(d.Enk) }

// NKpt returns len(Weight), the number of k-points.
func (d *KSData) NKpt() int { return len(d.Weight) }

// NSpin returns the number of spin channels, read from Enk[0][0].
// Returns 0 if Enk is empty or malformed.
func (d *KSData) NSpin() int {
	if len(d.Enk) == 0 || len(d.Enk[0]) == 0 {
		return 0
	}
	return len(d.Enk[0][0])
}

// Validate checks internal shape consistency across Enk, Chipsi, Weight and
// (if present) Occupy, and that Weight sums to 1 within tolerance.
//
// Stage 1 (Presence): reject a nil receiver.
// Stage 2 (Shape): every [b][k] row of Enk/Occupy and every [p][b][k] row of
// Chipsi must carry the same nspin; every [b] row of Enk/Chipsi must carry
// the same nkpt.
// Stage 3 (Weights): every weight must be >= 0 and the sum must equal 1
// within weightSumTol.
func (d *KSData) Validate() error {
	if d == nil {
		return ksdataErrorf("Validate", ErrNilData)
	}

	nband, nkpt, nspin := d.NBand(), d.NKpt(), d.NSpin()
	if nband == 0 || nkpt == 0 || nspin == 0 {
		return ksdataErrorf("Validate", ErrShapeMismatch)
	}

	for b := 0; b < nband; b++ {
		if len(d.Enk[b]) != nkpt {
			return ksdataErrorf("Validate", ErrShapeMismatch)
		}
		for k := 0; k < nkpt; k++ {
			if len(d.Enk[b][k]) != nspin {
				return ksdataErrorf("Validate", ErrShapeMismatch)
			}
		}
	}

	for p := 0; p < d.NProj(); p++ {
		if len(d.Chipsi[p]) != nband {
			return ksdataErrorf("Validate", ErrShapeMismatch)
		}
		for b := 0; b < nband; b++ {
			if len(d.Chipsi[p][b]) != nkpt {
				return ksdataErrorf("Validate", ErrShapeMismatch)
			}
			for k := 0; k < nkpt; k++ {
				if len(d.Chipsi[p][b][k]) != nspin {
					return ksdataErrorf("Validate", ErrShapeMismatch)
				}
			}
		}
	}

	if d.Occupy != nil {
		if len(d.Occupy) != nband {
			return ksdataErrorf("Validate", ErrShapeMismatch)
		}
		for b := 0; b < nband; b++ {
			if len(d.Occupy[b]) != nkpt {
				return ksdataErrorf("Validate", ErrShapeMismatch)
			}
			for k := 0; k < nkpt; k++ {
				if len(d.Occupy[b][k]) != nspin {
					return ksdataErrorf("Validate", ErrShapeMismatch)
				}
			}
		}
	}

	var sum float64
	for k := 0; k < nkpt; k++ {
		w := d.Weight[k]
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return ksdataErrorf("Validate", ErrBadWeight)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTol {
		return ksdataErrorf("Validate", ErrBadWeight)
	}

	for _, t := range d.Tetra {
		if t.Mult <= 0 {
			return ksdataErrorf("Validate", ErrBadTetra)
		}
		for _, ik := range t.K {
			if ik < 0 || ik >= nkpt {
				return ksdataErrorf("Validate", ErrBadTetra)
			}
		}
	}
	if len(d.Tetra) > 0 && d.Volt <= 0 {
		return ksdataErrorf("Validate", ErrBadTetra)
	}

	return nil
}

// CalibrateFermi replaces Enk[b][k][s] with Enk[b][k][s] - EF and records EF
// in d.Fermi. It is idempotent only for the pair (Enk, EF=0): calling it
// again with a nonzero EF shifts further.
//
// Stage 1 (Validate): reject a nil receiver.
// Stage 2 (Shift): subtract EF from every energy, fixed b-outer k-middle
// s-inner loop order for reproducibility.
func (d *KSData) CalibrateFermi(ef float64) error {
	if d == nil {
		return ksdataErrorf("CalibrateFermi", ErrNilData)
	}
	for b := range d.Enk {
		for k := range d.Enk[b] {
			for s := range d.Enk[b][k] {
				d.Enk[b][k][s] -= ef
			}
		}
	}
	d.Fermi = ef
	return nil
}

// EnergyRange returns (min, max) over all Enk entries.
// Returns (0,0,false) if Enk is empty.
func (d *KSData) EnergyRange() (lo, hi float64, ok bool) {
	first := true
	for b := range d.Enk {
		for k := range d.Enk[b] {
			for s := range d.Enk[b][k] {
				v := d.Enk[b][k][s]
				if first {
					lo, hi, first = v, v, false
				} else {
					if v < lo {
						lo = v
					}
					if v > hi {
						hi = v
					}
				}
			}
		}
	}
	return lo, hi, !first
}
