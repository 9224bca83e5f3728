package orthonorm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/cmat"
	"github.com/katalvlaran/ploadapt/orthonorm"
)

// fixedWindow is a minimal orthonorm.Window stub with one (k,s) slot.
type fixedWindow struct{ lo, hi int }

func (w fixedWindow) Bounds(k, s int) (int, int) { return w.lo, w.hi }
func (w fixedWindow) NKpt() int                  { return 1 }
func (w fixedWindow) NSpin() int                 { return 1 }

func oneGroup(d, nbnd int, vals []complex128) orthonorm.Group {
	F := cmat.NewAmplitudes(d, nbnd, 1, 1)
	idx := 0
	for i := 0; i < d; i++ {
		for b := 0; b < nbnd; b++ {
			F[i][b][0][0] = vals[idx]
			idx++
		}
	}
	return orthonorm.Group{Dim: d, F: F}
}

func overlapInfNorm(g orthonorm.Group, ib3 int) float64 {
	M, _ := cmat.NewDense(g.Dim, ib3)
	for i := 0; i < g.Dim; i++ {
		for b := 0; b < ib3; b++ {
			M.Set(i, b, g.F[i][b][0][0])
		}
	}
	O, _ := cmat.MulDagger(M)
	id, _ := cmat.Identity(g.Dim)
	diff, _ := cmat.Sub(O, id)
	return cmat.FrobeniusInfNorm(diff)
}

// Testable property 3: orthonormality after per-group mode.
func TestPerGroup_Orthonormal(t *testing.T) {
	g := oneGroup(1, 2, []complex128{2, 0})
	w := fixedWindow{lo: 0, hi: 1}
	err := orthonorm.PerGroup([]orthonorm.Group{g}, []orthonorm.Window{w})
	require.NoError(t, err)
	require.InDelta(t, 0, overlapInfNorm(g, 2), 1e-10)
}

func TestPerGroup_InsufficientBands(t *testing.T) {
	g := oneGroup(2, 1, []complex128{1, 0})
	w := fixedWindow{lo: 0, hi: 0}
	err := orthonorm.PerGroup([]orthonorm.Group{g}, []orthonorm.Window{w})
	require.Error(t, err)
}

// Two already-orthonormal rows stacked jointly must remain orthonormal
// after Joint.
func TestJoint_Orthonormal(t *testing.T) {
	g1 := oneGroup(1, 3, []complex128{1, 0, 0})
	g2 := oneGroup(1, 3, []complex128{0, 1, 0})
	w := fixedWindow{lo: 0, hi: 2}

	err := orthonorm.Joint([]orthonorm.Group{g1, g2}, w)
	require.NoError(t, err)

	// Recompose the stacked 2x3 matrix and check MM^dagger == I.
	M, _ := cmat.NewDense(2, 3)
	for b := 0; b < 3; b++ {
		M.Set(0, b, g1.F[0][b][0][0])
		M.Set(1, b, g2.F[0][b][0][0])
	}
	O, _ := cmat.MulDagger(M)
	id, _ := cmat.Identity(2)
	diff, _ := cmat.Sub(O, id)
	require.InDelta(t, 0, cmat.FrobeniusInfNorm(diff), 1e-10)
}

// identityBlockGroup builds a d×nbnd group whose row i is the unit vector
// e_(colOffset+i), i.e. a full d-shell projector already isolated onto its
// own disjoint slice of the shared window.
func identityBlockGroup(d, nbnd, colOffset int) orthonorm.Group {
	vals := make([]complex128, d*nbnd)
	for i := 0; i < d; i++ {
		vals[i*nbnd+colOffset+i] = 1
	}
	return oneGroup(d, nbnd, vals)
}

// Seed scenario S4 shape: two full d=5 shells sharing one nbnd=12 window
// (spec.md §8). Pins joint stacking/scatter at a realistic block size,
// beyond the trivial d=1 case above.
func TestJoint_Orthonormal_S4Shape(t *testing.T) {
	const d1, d2, nbnd = 5, 5, 12
	g1 := identityBlockGroup(d1, nbnd, 0)
	g2 := identityBlockGroup(d2, nbnd, d1)
	w := fixedWindow{lo: 0, hi: nbnd - 1}

	err := orthonorm.Joint([]orthonorm.Group{g1, g2}, w)
	require.NoError(t, err)

	D := d1 + d2
	M, _ := cmat.NewDense(D, nbnd)
	for b := 0; b < nbnd; b++ {
		for i := 0; i < d1; i++ {
			M.Set(i, b, g1.F[i][b][0][0])
		}
		for i := 0; i < d2; i++ {
			M.Set(d1+i, b, g2.F[i][b][0][0])
		}
	}

	// (a) the stacked D×nbnd matrix is row-orthonormal.
	O, _ := cmat.MulDagger(M)
	id, _ := cmat.Identity(D)
	diff, _ := cmat.Sub(O, id)
	require.InDelta(t, 0, cmat.FrobeniusInfNorm(diff), 1e-10)

	// (b) each group's own overlap block is independently identity too.
	require.InDelta(t, 0, overlapInfNorm(g1, nbnd), 1e-10)
	require.InDelta(t, 0, overlapInfNorm(g2, nbnd), 1e-10)
}
