package cmat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/cmat"
)

func identityT(n int) [][]complex128 {
	m := make([][]complex128, n)
	for i := range m {
		m[i] = make([]complex128, n)
		m[i][i] = 1
	}
	return m
}

// Testable property 1: identity rotation is the identity map on chipsi
// restricted to Pr. Two bands, since Rotate requires nband >= d.
func TestRotate_Identity(t *testing.T) {
	chipsi := [][][][]complex128{
		{{{1 + 2i}}, {{5 + 6i}}}, // p=0
		{{{3 + 4i}}, {{7 + 8i}}}, // p=1
	}
	R, err := cmat.Rotate(identityT(2), []int{0, 1}, chipsi)
	require.NoError(t, err)
	require.Equal(t, complex128(1+2i), R[0][0][0][0])
	require.Equal(t, complex128(3+4i), R[1][0][0][0])
}

// d_t2g selector on a 5-projector raw group, with three bands so that
// nband >= d; only band 0 carries the values under test.
func TestRotate_DT2gSelector(t *testing.T) {
	T := [][]complex128{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0},
	}
	chipsi := make([][][][]complex128, 5)
	vals := []complex128{1, 2, 3, 4, 5}
	for p := 0; p < 5; p++ {
		chipsi[p] = [][][]complex128{{{vals[p]}}, {{0}}, {{0}}}
	}
	R, err := cmat.Rotate(T, []int{0, 1, 2, 3, 4}, chipsi)
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 2, 4}, []complex128{R[0][0][0][0], R[1][0][0][0], R[2][0][0][0]})
}

func TestMulDagger_OverlapOfIdentityRowsIsIdentity(t *testing.T) {
	m, err := cmat.NewDenseFrom(2, 2, []complex128{1, 0, 0, 1})
	require.NoError(t, err)
	o, err := cmat.MulDagger(m)
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(o.At(0, 0)), 1e-12)
	require.InDelta(t, 0.0, real(o.At(0, 1)), 1e-12)
	require.InDelta(t, 1.0, real(o.At(1, 1)), 1e-12)
}

func TestEigenHermitian_Diagonal(t *testing.T) {
	m, err := cmat.NewDenseFrom(2, 2, []complex128{2, 0, 0, 5})
	require.NoError(t, err)
	vals, vecs, err := cmat.EigenHermitian(m)
	require.NoError(t, err)
	require.InDelta(t, 2.0, vals[0], 1e-9)
	require.InDelta(t, 5.0, vals[1], 1e-9)
	require.NotNil(t, vecs)
}

func TestInverseSqrtHermitian_Identity(t *testing.T) {
	id, err := cmat.Identity(3)
	require.NoError(t, err)
	s, err := cmat.InverseSqrtHermitian(id)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, real(s.At(i, j)), 1e-9)
			require.InDelta(t, 0.0, imag(s.At(i, j)), 1e-9)
		}
	}
}

func TestInverseSqrtHermitian_NonPositive(t *testing.T) {
	m, err := cmat.NewDenseFrom(1, 1, []complex128{-1})
	require.NoError(t, err)
	_, err = cmat.InverseSqrtHermitian(m)
	require.Error(t, err)
}
