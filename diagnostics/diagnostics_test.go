package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/cmat"
	"github.com/katalvlaran/ploadapt/diagnostics"
)

type fixedWindow struct{ lo, hi int }

func (w fixedWindow) Bounds(k, s int) (int, int) { return w.lo, w.hi }
func (w fixedWindow) NKpt() int                  { return 1 }
func (w fixedWindow) NSpin() int                 { return 1 }

func TestOverlap_IdentityRowsGivesIdentity(t *testing.T) {
	F := cmat.NewAmplitudes(1, 1, 1, 1)
	F[0][0][0][0] = 1
	w := fixedWindow{lo: 0, hi: 0}
	ovlp, err := diagnostics.Overlap(F, 1, w, []float64{1.0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(ovlp[0].At(0, 0)), 1e-12)
}

// Hermiticity: overlap is real-symmetric for real-valued amplitudes.
func TestOverlap_Hermitian(t *testing.T) {
	F := cmat.NewAmplitudes(2, 2, 1, 1)
	F[0][0][0][0], F[0][1][0][0] = 1, 0.5
	F[1][0][0][0], F[1][1][0][0] = 0.2, 1
	w := fixedWindow{lo: 0, hi: 1}
	ovlp, err := diagnostics.Overlap(F, 2, w, []float64{1.0})
	require.NoError(t, err)
	require.InDelta(t, real(ovlp[0].At(0, 1)), real(ovlp[0].At(1, 0)), 1e-12)
}

// Testable property 5: trace(dm) matches the weighted occupation sum for a
// trivial single-band, single-k, single-spin group (no window-averaging
// subtleties): with weight=1, nkpt=1, occupy=1, nspin=1 (sigma=2), and a
// unit amplitude, dm[0,0] must equal sigma * weight/nkpt * occupy * |F|^2.
func TestDensityMatrix_TraceMatchesOccupation(t *testing.T) {
	F := cmat.NewAmplitudes(1, 1, 1, 1)
	F[0][0][0][0] = 1
	w := fixedWindow{lo: 0, hi: 0}
	occupy := [][][]float64{{{1.0}}}
	dm, err := diagnostics.DensityMatrix(F, 1, w, []float64{1.0}, occupy)
	require.NoError(t, err)
	require.InDelta(t, 2.0, real(dm[0].At(0, 0)), 1e-12)
}

func TestLocalHamiltonian_Hermitian(t *testing.T) {
	F := cmat.NewAmplitudes(2, 1, 1, 1)
	F[0][0][0][0] = 1
	F[1][0][0][0] = 1i
	w := fixedWindow{lo: 0, hi: 0}
	enk := [][][]float64{{{3.0}}}
	H, err := diagnostics.LocalHamiltonian(F, 2, w, []float64{1.0}, enk)
	require.NoError(t, err)
	h01 := H[0].At(0, 1)
	h10 := H[0].At(1, 0)
	require.InDelta(t, real(h01), real(h10), 1e-12)
	require.InDelta(t, imag(h01), -imag(h10), 1e-12)
}
