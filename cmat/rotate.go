// Rotation and filtering of raw projector amplitudes (spec §4.4, §4.5).
package cmat

import "fmt"

var (
	// errInsufficientBands signals nband < d, the rotation precondition.
	errInsufficientBands = fmt.Errorf("cmat: nband must be >= rotation output dimension")
)

// ErrInsufficientBands is returned by Rotate when nband < rows(T).
var ErrInsufficientBands = errInsufficientBands

// Amplitudes is a [d][nband][nkpt][nspin] complex array: a group's rotated
// or filtered projector amplitudes.
type Amplitudes [][][][]complex128

// NewAmplitudes allocates a zeroed Amplitudes of the given shape.
// Complexity: O(d·nband·nkpt·nspin) time and memory.
func NewAmplitudes(d, nband, nkpt, nspin int) Amplitudes {
	out := make(Amplitudes, d)
	for i := range out {
		out[i] = make([][][]complex128, nband)
		for b := range out[i] {
			out[i][b] = make([][]complex128, nkpt)
			for k := range out[i][b] {
				out[i][b][k] = make([]complex128, nspin)
			}
		}
	}
	return out
}

// Rotate applies a group's transformation T (d×N) to chipsi restricted to
// the group's projector indices pr (len(pr)==N), producing
// R[0..d, 0..nband, 0..nkpt, 0..nspin] with
// R[:,b,k,s] = T · chipsi[pr, b, k, s] (spec §4.4).
// Stage 1 (Validate): T's shape against pr, pr's indices against chipsi,
// and nband against d.
// Stage 2 (Allocate): R sized to chipsi's full band/k/spin extent.
// Stage 3 (Rotate): for every (b,k,s), matrix-vector product T·chipsi[pr].
// Complexity: O(d·N·nband·nkpt·nspin) time, O(d·nband·nkpt·nspin) space,
// where N = len(pr).
func Rotate(T [][]complex128, pr []int, chipsi [][][][]complex128) (Amplitudes, error) {
	// Stage 1: validate
	d := len(T)
	if d == 0 || len(pr) == 0 {
		return nil, cmatErrorf("Rotate", ErrDimensionMismatch)
	}
	if len(T[0]) != len(pr) {
		return nil, cmatErrorf("Rotate", ErrDimensionMismatch)
	}
	for _, p := range pr {
		if p < 0 || p >= len(chipsi) {
			return nil, cmatErrorf("Rotate", ErrDimensionMismatch)
		}
	}
	nband := len(chipsi[pr[0]])
	if nband < d {
		return nil, cmatErrorf("Rotate", ErrInsufficientBands)
	}
	nkpt, nspin := 0, 0
	if nband > 0 {
		nkpt = len(chipsi[pr[0]][0])
		if nkpt > 0 {
			nspin = len(chipsi[pr[0]][0][0])
		}
	}

	// Stage 2: allocate
	R := NewAmplitudes(d, nband, nkpt, nspin)

	// Stage 3: rotate every (b,k,s) column
	for b := 0; b < nband; b++ {
		for k := 0; k < nkpt; k++ {
			for s := 0; s < nspin; s++ {
				for i := 0; i < d; i++ {
					var sum complex128
					row := T[i]
					for j, p := range pr {
						sum += row[j] * chipsi[p][b][k][s]
					}
					R[i][b][k][s] = sum
				}
			}
		}
	}
	return R, nil
}

// WindowLike is the minimal window surface Filter needs, satisfied by
// plowindow.PrWindow.
type WindowLike interface {
	Bounds(k, s int) (lo, hi int)
	NBnd() int
	NKpt() int
	NSpin() int
}

// Filter copies, per (k,s), the band-window slice of R into a zero-padded,
// window-sized array F[0..d, 0..nbnd, 0..nkpt, 0..nspin] (spec §4.5).
// Complexity: O(d·nbnd·nkpt·nspin) time, O(d·w.NBnd()·nkpt·nspin) space.
func Filter(R Amplitudes, w WindowLike) (Amplitudes, error) {
	if len(R) == 0 {
		return nil, cmatErrorf("Filter", ErrNilMatrix)
	}
	d := len(R)
	nkpt, nspin := w.NKpt(), w.NSpin()
	F := NewAmplitudes(d, w.NBnd(), nkpt, nspin)
	for k := 0; k < nkpt; k++ {
		for s := 0; s < nspin; s++ {
			lo, hi := w.Bounds(k, s) // per-(k,s) band range, spec §4.5
			ib3 := hi - lo + 1
			if ib3 > w.NBnd() {
				return nil, cmatErrorf("Filter", ErrDimensionMismatch)
			}
			for i := 0; i < d; i++ {
				for bb := 0; bb < ib3; bb++ {
					F[i][bb][k][s] = R[i][lo+bb][k][s]
				}
			}
		}
	}
	return F, nil
}
