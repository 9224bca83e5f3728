// Package orthonorm Löwdin-orthonormalises filtered projector amplitudes,
// either independently per group (per-group mode) or jointly across all
// groups sharing a single window (joint mode), per spec §4.6.
package orthonorm

import (
	"fmt"

	"github.com/katalvlaran/ploadapt/cmat"
)

// orthonormErrorf wraps an underlying error with call-site context.
func orthonormErrorf(tag string, err error) error {
	return fmt.Errorf("orthonorm.%s: %w", tag, err)
}

// Window is the minimal window surface this package needs.
type Window interface {
	Bounds(k, s int) (lo, hi int)
	NKpt() int
	NSpin() int
}

// Group pairs a resolved output dimension with its filtered amplitudes
// F[d][nbnd][nkpt][nspin], mutated in place by orthogonalisation.
type Group struct {
	Dim int
	F   cmat.Amplitudes
}

// orthogonalise computes S=(MM†)^(-1/2) via Hermitian eigendecomposition and
// returns S·M (spec §4.6's "orthogonalise" primitive).
// Complexity: O(d²·ib3 + d³) time, O(d²) space, where d=M.Rows(),
// ib3=M.Cols(); the d³ term is InverseSqrtHermitian's eigendecomposition.
func orthogonalise(M *cmat.Dense) (*cmat.Dense, error) {
	O, err := cmat.MulDagger(M)
	if err != nil {
		return nil, err
	}
	S, err := cmat.InverseSqrtHermitian(O)
	if err != nil {
		return nil, err
	}
	return cmat.Mul(S, M)
}

// extract builds a d×ib3 Dense from F[:, 0:ib3, k, s].
// Complexity: O(d·ib3) time and memory.
func extract(F cmat.Amplitudes, d, ib3, k, s int) (*cmat.Dense, error) {
	M, err := cmat.NewDense(d, ib3)
	if err != nil {
		return nil, err
	}
	for i := 0; i < d; i++ {
		for bb := 0; bb < ib3; bb++ {
			M.Set(i, bb, F[i][bb][k][s])
		}
	}
	return M, nil
}

// scatter writes an orthonormalised d×ib3 Dense back into F[:, 0:ib3, k, s].
// Complexity: O(d·ib3) time, O(1) extra space (writes in place).
func scatter(F cmat.Amplitudes, M *cmat.Dense, k, s int) {
	for i := 0; i < M.Rows(); i++ {
		for bb := 0; bb < M.Cols(); bb++ {
			F[i][bb][k][s] = M.At(i, bb)
		}
	}
}

// PerGroup orthonormalises each group independently, for every (k,s), per
// spec §4.6's per-group mode (selected when group windows differ).
// Stage 1 (Validate): groups and windows are non-empty and paired 1:1.
// Stage 2 (Orthonormalise): extract, orthogonalise, scatter, per (g,k,s).
// Complexity: O(Σ_g nkpt·nspin·(d_g²·ib3_g + d_g³)) time, dominated by the
// per-(k,s) eigendecomposition inside orthogonalise; O(max_g d_g·ib3_g)
// transient space.
func PerGroup(groups []Group, windows []Window) error {
	// Stage 1: validate
	if len(groups) == 0 {
		return orthonormErrorf("PerGroup", ErrEmptyGroups)
	}
	if len(groups) != len(windows) {
		return orthonormErrorf("PerGroup", ErrInsufficientBands)
	}
	// Stage 2: orthonormalise each group independently
	for g := range groups {
		d := groups[g].Dim
		nkpt, nspin := windows[g].NKpt(), windows[g].NSpin()
		for s := 0; s < nspin; s++ {
			for k := 0; k < nkpt; k++ {
				lo, hi := windows[g].Bounds(k, s)
				ib3 := hi - lo + 1
				if ib3 < d {
					return orthonormErrorf("PerGroup", ErrInsufficientBands)
				}
				M, err := extract(groups[g].F, d, ib3, k, s)
				if err != nil {
					return orthonormErrorf("PerGroup", err)
				}
				out, err := orthogonalise(M)
				if err != nil {
					return orthonormErrorf("PerGroup", err)
				}
				scatter(groups[g].F, out, k, s)
			}
		}
	}
	return nil
}

// Joint orthonormalises all groups together against a single shared window,
// per spec §4.6's joint mode (selected when len(window)/2 == 1): groups are
// stacked into one D×ib3 matrix by contiguous row blocks, orthonormalised
// once, then scattered back per group.
// Stage 1 (Layout): compute each group's row offset into the D×ib3 stack.
// Stage 2 (Stack+Orthonormalise+Unstack): per (k,s), gather every group's
// rows into one Dense, orthogonalise once, then scatter rows back.
// Complexity: O(nkpt·nspin·(D²·ib3 + D³)) time, dominated by the shared
// eigendecomposition, where D=Σ_g d_g; O(D·ib3) transient space per (k,s).
func Joint(groups []Group, window Window) error {
	if len(groups) == 0 {
		return orthonormErrorf("Joint", ErrEmptyGroups)
	}
	// Stage 1: layout
	D := 0
	offsets := make([]int, len(groups))
	for g := range groups {
		offsets[g] = D
		D += groups[g].Dim
	}

	// Stage 2: stack, orthogonalise, unstack
	nkpt, nspin := window.NKpt(), window.NSpin()
	for s := 0; s < nspin; s++ {
		for k := 0; k < nkpt; k++ {
			lo, hi := window.Bounds(k, s)
			ib3 := hi - lo + 1
			if ib3 < D {
				return orthonormErrorf("Joint", ErrInsufficientBands)
			}
			M, err := cmat.NewDense(D, ib3)
			if err != nil {
				return orthonormErrorf("Joint", err)
			}
			for g := range groups {
				for i := 0; i < groups[g].Dim; i++ {
					for bb := 0; bb < ib3; bb++ {
						M.Set(offsets[g]+i, bb, groups[g].F[i][bb][k][s])
					}
				}
			}
			out, err := orthogonalise(M)
			if err != nil {
				return orthonormErrorf("Joint", err)
			}
			for g := range groups {
				for i := 0; i < groups[g].Dim; i++ {
					for bb := 0; bb < ib3; bb++ {
						groups[g].F[i][bb][k][s] = out.At(offsets[g]+i, bb)
					}
				}
			}
		}
	}
	return nil
}
