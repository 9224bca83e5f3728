// Package tetra implements the Blöchl linear-tetrahedron-method integration
// weights (spec §4.8) and the partial density of states they drive.
//
// Each tetrahedron t contributes, for every band b and spin s, a smooth
// cumulative weight w_t(ε) built from the band's four corner energies
// (sorted ascending e1<=e2<=e3<=e4); its energy-derivative dw_t/dε(ε) is
// the per-tetrahedron density-of-states contribution at ε, split equally
// among the tetrahedron's four corner k-points and normalised by the total
// tetrahedron weight, the sum of all multiplicities times volt (the
// Lambin-Vigneron / Blöchl closed form also used
// by most linear-tetrahedron DFT codes).
package tetra

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/katalvlaran/ploadapt/cmat"
	"github.com/katalvlaran/ploadapt/ksdata"
)

// meshStep is the fixed DOS mesh spacing (spec §4.8).
const meshStep = 0.01

// tetraErrorf wraps an underlying error with call-site context.
func tetraErrorf(tag string, err error) error {
	return fmt.Errorf("tetra.%s: %w", tag, err)
}

// cornerDeriv returns dw/dε for one tetrahedron's cumulative weight function
// at energy eps, given its four corner energies already sorted ascending.
// It is the standard five-region Blöchl closed form: zero below e1, a cubic
// ramp on (e1,e2], a quadratic-minus-cubic bridge on (e2,e3], a mirrored
// cubic ramp on (e3,e4], and zero above e4.
// Complexity: O(1).
func cornerDeriv(eps, e1, e2, e3, e4 float64) float64 {
	switch {
	case eps <= e1 || eps >= e4: // outside the tetrahedron's support
		return 0
	case eps <= e2: // region 2: cubic ramp from e1
		d1 := (e2 - e1) * (e3 - e1) * (e4 - e1)
		if d1 == 0 {
			return 0
		}
		return 3 * (eps - e1) * (eps - e1) / d1
	case eps <= e3: // region 3: quadratic-minus-cubic bridge
		d2 := (e3 - e1) * (e4 - e1)
		if d2 == 0 {
			return 0
		}
		x := eps - e2
		b := 3 * (e2 - e1)
		c := 3.0
		denomK := (e3 - e2) * (e4 - e2)
		var k float64
		if denomK != 0 {
			k = (e3 - e1 + e4 - e2) / denomK
		}
		return (b + 2*c*x - 3*k*x*x) / d2
	default: // e3 < eps < e4
		d3 := (e4 - e1) * (e4 - e2) * (e4 - e3)
		if d3 == 0 {
			return 0
		}
		return 3 * (e4 - eps) * (e4 - eps) / d3
	}
}

// BandKWeights returns W[b][k], the per-band per-k-point integration weight
// density at energy eps for spin s, summed over every tetrahedron that
// touches (b,k). enk must be shaped [nband][nkpt][nspin]. volt is the
// tetrahedron volume factor; the normalization denominator is the total
// tetrahedron weight, the sum of all multiplicities times volt (spec §4.8).
// Stage 1 (Validate): tet non-empty, volt positive, enk non-empty.
// Stage 2 (Accumulate): every tetrahedron's cornerDeriv contribution splits
// equally across its four corner k-points.
// Complexity: O(len(tet)·nband) time, O(nband·nkpt) space.
func BandKWeights(enk [][][]float64, tet []ksdata.Tetrahedron, volt, eps float64, s int) ([][]float64, error) {
	// Stage 1: validate
	if len(tet) == 0 {
		return nil, tetraErrorf("BandKWeights", ErrNoTetrahedra)
	}
	if volt <= 0 {
		return nil, tetraErrorf("BandKWeights", ErrBadVolt)
	}
	nband := len(enk)
	if nband == 0 {
		return nil, tetraErrorf("BandKWeights", ErrShapeMismatch)
	}
	nkpt := len(enk[0])

	totalMult := 0
	for _, t := range tet {
		totalMult += t.Mult
	}
	if totalMult <= 0 {
		return nil, tetraErrorf("BandKWeights", ErrShapeMismatch)
	}
	totalWeight := float64(totalMult) * volt

	W := make([][]float64, nband)
	for b := range W {
		W[b] = make([]float64, nkpt)
	}

	// Stage 2: accumulate
	corners := make([]float64, 4)
	for _, t := range tet {
		for b := 0; b < nband; b++ {
			for i, ik := range t.K {
				if ik < 0 || ik >= nkpt || s >= len(enk[b][ik]) {
					return nil, tetraErrorf("BandKWeights", ErrShapeMismatch)
				}
				corners[i] = enk[b][ik][s]
			}
			sort.Float64s(corners)
			dw := cornerDeriv(eps, corners[0], corners[1], corners[2], corners[3])
			contrib := float64(t.Mult) / (4 * totalWeight) * dw
			for _, ik := range t.K {
				W[b][ik] += contrib
			}
		}
	}
	return W, nil
}

// Window is the minimal window surface this package needs to slice F's
// local band axis back onto enk's global band axis.
type Window interface {
	Bounds(k, s int) (lo, hi int)
	NKpt() int
	NSpin() int
	IsIntWindow() bool
	EnergyBounds() (lo, hi float64)
	GlobalBandRange() (bmin, bmax int)
}

// BuildMesh returns the fixed-step energy mesh the partial DOS is sampled
// on: [Bwin.lo, Bwin.hi] for an energy window, or the Enk range spanned by
// the window's global band range for an integer window (spec §4.8).
// Stage 1 (Bounds): scan enk over the band range, or read the window's fixed
// energy bounds directly.
// Stage 2 (Snap): round outward to the nearest meshStep multiple.
// Complexity: O(nband·nkpt·nspin) time, O((hi-lo)/meshStep) space.
func BuildMesh(w Window, enk [][][]float64) []float64 {
	// Stage 1: bounds
	var lo, hi float64
	if w.IsIntWindow() {
		bmin, bmax := w.GlobalBandRange()
		first := true
		for b := bmin; b <= bmax && b < len(enk); b++ {
			for k := range enk[b] {
				for s := range enk[b][k] {
					v := enk[b][k][s]
					if first {
						lo, hi, first = v, v, false
						continue
					}
					if v < lo {
						lo = v
					}
					if v > hi {
						hi = v
					}
				}
			}
		}
	} else {
		lo, hi = w.EnergyBounds()
	}

	// Stage 2: snap to the fixed grid
	lo = math.Floor(lo/meshStep) * meshStep
	hi = math.Ceil(hi/meshStep) * meshStep
	if hi < lo {
		hi = lo
	}
	n := int(math.Round((hi-lo)/meshStep)) + 1
	mesh := make([]float64, n)
	for i := range mesh {
		mesh[i] = lo + float64(i)*meshStep
	}
	return mesh
}

// PartialDOS computes D[q][s][m] = Σ_{b,k} W[b,k,s](mesh[m]) * |F[q][bb][k][s]|^2
// for a correlated-subspace dimension d and the group's window w, over the
// supplied tetrahedron mesh and volume factor volt (spec §4.8).
// Stage 1 (Allocate): D shaped [d][nspin][len(mesh)].
// Stage 2 (Weight+Project): for every spin and mesh point, recompute the
// tetrahedron weights and project them through F's local band window.
// Complexity: O(nspin·len(mesh)·(len(tet)·nband + nkpt·nbnd·d)) time,
// O(d·nspin·len(mesh)) space.
func PartialDOS(F cmat.Amplitudes, d int, w Window, enk [][][]float64, tet []ksdata.Tetrahedron, volt float64, mesh []float64) ([][][]float64, error) {
	// Stage 1: allocate
	nspin := w.NSpin()
	nkpt := w.NKpt()

	out := make([][][]float64, d)
	for q := range out {
		out[q] = make([][]float64, nspin)
		for s := range out[q] {
			out[q][s] = make([]float64, len(mesh))
		}
	}

	// Stage 2: weight and project
	for s := 0; s < nspin; s++ {
		for mi, eps := range mesh {
			W, err := BandKWeights(enk, tet, volt, eps, s)
			if err != nil {
				return nil, tetraErrorf("PartialDOS", err)
			}
			for k := 0; k < nkpt; k++ {
				lo, hi := w.Bounds(k, s)
				for bb := 0; bb <= hi-lo; bb++ {
					bGlobal := lo + bb
					if bGlobal >= len(W) {
						continue
					}
					wbk := W[bGlobal][k]
					if wbk == 0 {
						continue
					}
					for q := 0; q < d; q++ {
						amp := F[q][bb][k][s]
						a := real(amp)*real(amp) + imag(amp)*imag(amp)
						out[q][s][mi] += wbk * a
					}
				}
			}
		}
	}
	return out, nil
}

// Summarize reports the mean and standard deviation of a per-mesh DOS
// series, a cheap descriptive diagnostic over PartialDOS's output (e.g.
// D[q][s]) useful for sanity-checking a run before trusting dos.chk.<g>.
// Complexity: O(len(series)) time, O(1) extra space.
func Summarize(series []float64) (mean, stddev float64, err error) {
	mean, err = stats.Mean(series)
	if err != nil {
		return 0, 0, tetraErrorf("Summarize", err)
	}
	stddev, err = stats.StandardDeviation(series)
	if err != nil {
		return 0, 0, tetraErrorf("Summarize", err)
	}
	return mean, stddev, nil
}
