// Package diagnostics computes the optional opt-in matrices of spec §4.7:
// per-spin overlap, density matrix, local Hamiltonian, and (joint mode
// only) the full k-resolved Hamiltonian.
package diagnostics

import (
	"fmt"

	"github.com/katalvlaran/ploadapt/cmat"
)

// diagErrorf wraps an underlying error with call-site context.
func diagErrorf(tag string, err error) error {
	return fmt.Errorf("diagnostics.%s: %w", tag, err)
}

// Window is the minimal window surface this package needs.
type Window interface {
	Bounds(k, s int) (lo, hi int)
	NKpt() int
	NSpin() int
}

// Sigma returns the spin-degeneracy factor used by the density matrix:
// 2 for a spin-unpolarized calculation (nspin==1), 1 otherwise.
// Complexity: O(1).
func Sigma(nspin int) float64 {
	if nspin == 1 {
		return 2
	}
	return 1
}

// Complexity: O(d·ib3) time and memory.
func extract(F cmat.Amplitudes, d, ib3, k, s int) *cmat.Dense {
	M, _ := cmat.NewDense(d, ib3)
	for i := 0; i < d; i++ {
		for bb := 0; bb < ib3; bb++ {
			M.Set(i, bb, F[i][bb][k][s])
		}
	}
	return M
}

// Complexity: O(r·c) time, O(1) extra space, where r,c = dst.Rows/Cols.
func reAdd(dst *cmat.Dense, src *cmat.Dense, scale float64) {
	for i := 0; i < dst.Rows(); i++ {
		for j := 0; j < dst.Cols(); j++ {
			dst.Set(i, j, dst.At(i, j)+complex(real(src.At(i, j))*scale, 0))
		}
	}
}

// Complexity: O(r·c) time, O(1) extra space, where r,c = dst.Rows/Cols.
func cAdd(dst *cmat.Dense, src *cmat.Dense, scale float64) {
	for i := 0; i < dst.Rows(); i++ {
		for j := 0; j < dst.Cols(); j++ {
			dst.Set(i, j, dst.At(i, j)+src.At(i, j)*complex(scale, 0))
		}
	}
}

// diagScaleCols returns M * diag(vals) (right-multiplies a diagonal of real
// weights, scaling column j of M by vals[j]).
// Complexity: O(r·c) time and memory, where r,c = M.Rows/Cols.
func diagScaleCols(M *cmat.Dense, diagVals []float64) *cmat.Dense {
	out := M.Clone()
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			out.Set(i, j, out.At(i, j)*complex(diagVals[j], 0))
		}
	}
	return out
}

// Overlap computes ovlp_g[s] = Σ_k ω_k · Re(A_g(k,s)·A_g(k,s)†) for every
// spin, with ω_k = weight[k]/nkpt (spec §4.7).
// Complexity: O(nspin·nkpt·d²·ib3) time, O(nspin·d²) space.
func Overlap(F cmat.Amplitudes, d int, w Window, weight []float64) ([]*cmat.Dense, error) {
	nkpt, nspin := w.NKpt(), w.NSpin()
	if len(weight) != nkpt {
		return nil, diagErrorf("Overlap", ErrShapeMismatch)
	}
	out := make([]*cmat.Dense, nspin)
	for s := 0; s < nspin; s++ { // per-spin accumulator, k-weighted sum
		acc, err := cmat.NewDense(d, d)
		if err != nil {
			return nil, diagErrorf("Overlap", err)
		}
		for k := 0; k < nkpt; k++ {
			lo, hi := w.Bounds(k, s)
			ib3 := hi - lo + 1
			A := extract(F, d, ib3, k, s)
			AA, err := cmat.MulDagger(A)
			if err != nil {
				return nil, diagErrorf("Overlap", err)
			}
			wk := weight[k] / float64(nkpt)
			reAdd(acc, AA, wk)
		}
		out[s] = acc
	}
	return out, nil
}

// DensityMatrix computes dm_g[s] = Σ_k (ω_k·σ)·Re(A·diag(occupy)·A†), with
// occupy sliced to the (k,s) window's actual band range (spec §4.7; the
// window's actual per-(k,s) band offset is used rather than the group's
// overall bmin, since that is the offset F's local band axis was filled
// from — see DESIGN.md).
// Complexity: O(nspin·nkpt·d²·ib3) time, O(nspin·d²) space.
func DensityMatrix(F cmat.Amplitudes, d int, w Window, weight []float64, occupy [][][]float64) ([]*cmat.Dense, error) {
	nkpt, nspin := w.NKpt(), w.NSpin()
	if len(weight) != nkpt {
		return nil, diagErrorf("DensityMatrix", ErrShapeMismatch)
	}
	sigma := Sigma(nspin)
	out := make([]*cmat.Dense, nspin)
	for s := 0; s < nspin; s++ {
		acc, err := cmat.NewDense(d, d)
		if err != nil {
			return nil, diagErrorf("DensityMatrix", err)
		}
		for k := 0; k < nkpt; k++ {
			lo, hi := w.Bounds(k, s)
			ib3 := hi - lo + 1
			A := extract(F, d, ib3, k, s)
			occVals := make([]float64, ib3)
			for bb := 0; bb < ib3; bb++ {
				occVals[bb] = occupy[lo+bb][k][s] // occupy sliced to this (k,s)'s local band offset lo
			}
			AD := diagScaleCols(A, occVals)
			ADA, err := cmat.MulDagger2(AD, A) // A·diag(occ)·A†
			if err != nil {
				return nil, diagErrorf("DensityMatrix", err)
			}
			wk := weight[k] / float64(nkpt) * sigma
			reAdd(acc, ADA, wk)
		}
		out[s] = acc
	}
	return out, nil
}

// LocalHamiltonian computes H_g[s] = Σ_k ω_k·(A·diag(enk)·A†), complex
// (no Re taken), with enk sliced to the (k,s) window's actual band range
// (spec §4.7).
// Complexity: O(nspin·nkpt·d²·ib3) time, O(nspin·d²) space.
func LocalHamiltonian(F cmat.Amplitudes, d int, w Window, weight []float64, enk [][][]float64) ([]*cmat.Dense, error) {
	nkpt, nspin := w.NKpt(), w.NSpin()
	if len(weight) != nkpt {
		return nil, diagErrorf("LocalHamiltonian", ErrShapeMismatch)
	}
	out := make([]*cmat.Dense, nspin)
	for s := 0; s < nspin; s++ {
		acc, err := cmat.NewDense(d, d)
		if err != nil {
			return nil, diagErrorf("LocalHamiltonian", err)
		}
		for k := 0; k < nkpt; k++ {
			lo, hi := w.Bounds(k, s)
			ib3 := hi - lo + 1
			A := extract(F, d, ib3, k, s)
			enVals := make([]float64, ib3)
			for bb := 0; bb < ib3; bb++ {
				enVals[bb] = enk[lo+bb][k][s] // enk sliced to this (k,s)'s local band offset lo
			}
			AD := diagScaleCols(A, enVals)
			ADA, err := cmat.MulDagger2(AD, A) // A·diag(enk)·A†, no Re taken
			if err != nil {
				return nil, diagErrorf("LocalHamiltonian", err)
			}
			wk := weight[k] / float64(nkpt)
			cAdd(acc, ADA, wk)
		}
		out[s] = acc
	}
	return out, nil
}

// FullHamiltonian computes the joint-mode, per-(k,s) Hamiltonian
// H[:,:,k,s] = M·diag(enk)·M† over the jointly stacked amplitudes M
// (no summation over k), per spec §4.7's "Full Hamiltonian" (joint mode
// only).
// Complexity: O(nspin·nkpt·D²·ib3) time, O(nspin·nkpt·D²) space.
func FullHamiltonian(stackedF cmat.Amplitudes, D int, w Window, enk [][][]float64) ([][]*cmat.Dense, error) {
	nkpt, nspin := w.NKpt(), w.NSpin()
	out := make([][]*cmat.Dense, nspin)
	for s := 0; s < nspin; s++ {
		out[s] = make([]*cmat.Dense, nkpt)
		for k := 0; k < nkpt; k++ {
			lo, hi := w.Bounds(k, s)
			ib3 := hi - lo + 1
			M := extract(stackedF, D, ib3, k, s)
			enVals := make([]float64, ib3)
			for bb := 0; bb < ib3; bb++ {
				enVals[bb] = enk[lo+bb][k][s] // per-(k,s) local band offset, no k-summation (joint mode)
			}
			MD := diagScaleCols(M, enVals)
			MDM, err := cmat.MulDagger2(MD, M) // M·diag(enk)·M†
			if err != nil {
				return nil, diagErrorf("FullHamiltonian", err)
			}
			out[s][k] = MDM
		}
	}
	return out, nil
}
