package plowindow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ploadapt/plowindow"
)

// nband=4, enk[:,0,0]=(-2,-0.5,0.3,1.7), window (-1.0,1.0).
// Expect kwin[0,0,:] = (1,2) zero-based, nbnd=2.
func TestResolve_EnergyWindowSelectsInBandRange(t *testing.T) {
	enk := [][][]float64{
		{{-2}}, {{-0.5}}, {{0.3}}, {{1.7}},
	}
	windows, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Float(-1.0), plowindow.Float(1.0)},
		1, 4, 1, 1, enk,
	)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	require.Equal(t, [2]int{1, 2}, windows[0].Kwin[0][0])
	require.Equal(t, 2, windows[0].Nbnd)
}

func TestResolve_IntegerWindow_Broadcast(t *testing.T) {
	enk := [][][]float64{{{0, 0}}, {{1, 1}}, {{2, 2}}}
	windows, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Int(1), plowindow.Int(1)},
		1, 3, 1, 2, enk,
	)
	require.NoError(t, err)
	require.Equal(t, [2]int{0, 0}, windows[0].Kwin[0][0])
	require.Equal(t, [2]int{0, 0}, windows[0].Kwin[0][1])
	require.Equal(t, 1, windows[0].Nbnd)
}

func TestResolve_BadLength(t *testing.T) {
	_, err := plowindow.Resolve([]plowindow.Value{plowindow.Int(1)}, 2, 4, 1, 1, nil)
	require.True(t, errors.Is(err, plowindow.ErrBadWindowLen))
}

func TestResolve_MixedKind(t *testing.T) {
	_, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Int(1), plowindow.Float(2.0)},
		1, 4, 1, 1, nil,
	)
	require.True(t, errors.Is(err, plowindow.ErrMixedWindowKind))
}

func TestResolve_BadOrder(t *testing.T) {
	_, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Int(3), plowindow.Int(1)},
		1, 4, 1, 1, nil,
	)
	require.True(t, errors.Is(err, plowindow.ErrBadWindowOrder))
}

func TestResolve_OutOfRange(t *testing.T) {
	enk := [][][]float64{{{0}}, {{1}}}
	_, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Int(1), plowindow.Int(5)},
		1, 2, 1, 1, enk,
	)
	require.True(t, errors.Is(err, plowindow.ErrWindowOutOfRange))
}

// Window monotonicity (spec testable property 2).
func TestResolve_WindowMonotone(t *testing.T) {
	enk := [][][]float64{{{-2}}, {{-0.5}}, {{0.3}}, {{1.7}}}
	windows, err := plowindow.Resolve(
		[]plowindow.Value{plowindow.Float(-1.0), plowindow.Float(1.0)},
		1, 4, 1, 1, enk,
	)
	require.NoError(t, err)
	kw := windows[0].Kwin[0][0]
	require.LessOrEqual(t, kw[0], kw[1])
	require.GreaterOrEqual(t, enk[kw[0]][0][0], -1.0)
	require.LessOrEqual(t, enk[kw[1]][0][0], 1.0)
}
