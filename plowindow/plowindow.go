// Package plowindow resolves, per projector group, the per-k-point
// per-spin band window bounding the Kohn-Sham subspace it is filtered into
// (spec §4.3).
package plowindow

import (
	"fmt"
	"math"
)

// plowindowErrorf wraps an underlying error with call-site context.
func plowindowErrorf(tag string, err error) error {
	return fmt.Errorf("plowindow.%s: %w", tag, err)
}

// Value is a tagged scalar from the configuration's window list: either a
// band index (IsInt) or an energy (float), per spec §9's "sum-typed
// shell/window" design note.
type Value struct {
	IsInt bool
	Val   float64
}

// Int builds an integer (band-index) window value.
func Int(v int) Value { return Value{IsInt: true, Val: float64(v)} }

// Float builds a floating (energy) window value.
func Float(v float64) Value { return Value{IsInt: false, Val: v} }

// PrWindow is the resolved band window for one projector group.
type PrWindow struct {
	IsInt    bool
	Lo, Hi   float64      // the original (bwin.lo, bwin.hi) pair, as given
	Kwin     [][][2]int   // Kwin[k][s] = [lo,hi], zero-based inclusive band indices
	Bmin     int
	Bmax     int
	Nbnd     int
}

// Resolve computes one PrWindow per group from the configuration's window
// list and the energy grid enk[nband][nkpt][nspin] (spec §4.3).
//
// Stage 1 (Validate length): nwin = len(window)/2 must be 1 or numGroups.
// Stage 2 (Per-group pair): same-kind check; hi >= lo for an integer
// window (a single band is allowed), hi > lo for an energy window.
// Stage 3 (Resolve): integer windows broadcast verbatim; float windows scan
// enk per (k,s) for the enclosing band range.
// Stage 4 (Summarize): bmin/bmax/nbnd over the per-(k,s) window.
func Resolve(window []Value, numGroups, nband, nkpt, nspin int, enk [][][]float64) ([]PrWindow, error) {
	if len(window)%2 != 0 {
		return nil, plowindowErrorf("Resolve", ErrBadWindowLen)
	}
	nwin := len(window) / 2
	if nwin != 1 && nwin != numGroups {
		return nil, plowindowErrorf("Resolve", ErrBadWindowLen)
	}

	globalLo, globalHi, haveRange := energyRange(enk)

	out := make([]PrWindow, numGroups)
	for g := 0; g < numGroups; g++ {
		idx := g
		if nwin == 1 {
			idx = 0
		}
		lo, hi := window[2*idx], window[2*idx+1]
		if lo.IsInt != hi.IsInt {
			return nil, plowindowErrorf("Resolve", ErrMixedWindowKind)
		}
		if hi.Val < lo.Val || (!lo.IsInt && hi.Val == lo.Val) {
			return nil, plowindowErrorf("Resolve", ErrBadWindowOrder)
		}

		pw := PrWindow{IsInt: lo.IsInt, Lo: lo.Val, Hi: hi.Val}
		pw.Kwin = make([][][2]int, nkpt)
		for k := range pw.Kwin {
			pw.Kwin[k] = make([][2]int, nspin)
		}

		if lo.IsInt {
			loB, hiB := int(lo.Val), int(hi.Val)
			if loB < 1 || hiB > nband || loB > hiB {
				return nil, plowindowErrorf("Resolve", ErrWindowOutOfRange)
			}
			for k := 0; k < nkpt; k++ {
				for s := 0; s < nspin; s++ {
					pw.Kwin[k][s] = [2]int{loB - 1, hiB - 1}
				}
			}
		} else {
			if !haveRange || hi.Val < globalLo || lo.Val > globalHi {
				return nil, plowindowErrorf("Resolve", ErrWindowOutOfRange)
			}
			for k := 0; k < nkpt; k++ {
				for s := 0; s < nspin; s++ {
					b0, b1, err := bandRangeForEnergy(enk, k, s, lo.Val, hi.Val)
					if err != nil {
						return nil, plowindowErrorf("Resolve", err)
					}
					pw.Kwin[k][s] = [2]int{b0, b1}
				}
			}
		}

		pw.Bmin, pw.Bmax = pw.Kwin[0][0][0], pw.Kwin[0][0][1]
		for k := 0; k < nkpt; k++ {
			for s := 0; s < nspin; s++ {
				if pw.Kwin[k][s][0] < pw.Bmin {
					pw.Bmin = pw.Kwin[k][s][0]
				}
				if pw.Kwin[k][s][1] > pw.Bmax {
					pw.Bmax = pw.Kwin[k][s][1]
				}
			}
		}
		pw.Nbnd = pw.Bmax - pw.Bmin + 1

		out[g] = pw
	}
	return out, nil
}

// energyRange returns (min, max) over the whole enk grid.
func energyRange(enk [][][]float64) (lo, hi float64, ok bool) {
	first := true
	for b := range enk {
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
	return lo, hi, !first
}

// bandRangeForEnergy finds the smallest band index with enk[b][k][s] >= lo
// and the largest band index with enk[b][k][s] <= hi, for a fixed (k,s).
func bandRangeForEnergy(enk [][][]float64, k, s int, lo, hi float64) (int, int, error) {
	b0, haveLo := -1, false
	b1, haveHi := -1, false
	for b := range enk {
		e := enk[b][k][s]
		if e >= lo && !haveLo {
			b0, haveLo = b, true
		}
		if e <= hi {
			b1, haveHi = b, true
		}
	}
	if !haveLo || !haveHi || b1 < b0 {
		return 0, 0, ErrEmptyWindow
	}
	return b0, b1, nil
}

// Bounds returns the inclusive [lo,hi] band-index window for (k,s).
func (pw PrWindow) Bounds(k, s int) (lo, hi int) {
	kw := pw.Kwin[k][s]
	return kw[0], kw[1]
}

// NBnd returns the per-window band count (spans bmin..bmax across all k,s).
func (pw PrWindow) NBnd() int { return pw.Nbnd }

// NKpt returns the number of k-points this window was resolved over.
func (pw PrWindow) NKpt() int { return len(pw.Kwin) }

// NSpin returns the number of spin channels this window was resolved over.
func (pw PrWindow) NSpin() int {
	if len(pw.Kwin) == 0 {
		return 0
	}
	return len(pw.Kwin[0])
}

// IsIntWindow reports whether this window was specified as band indices
// rather than an energy range.
func (pw PrWindow) IsIntWindow() bool { return pw.IsInt }

// EnergyBounds returns the original (lo,hi) energy pair the window was
// specified with; meaningless (but harmless) for an integer window.
func (pw PrWindow) EnergyBounds() (lo, hi float64) { return pw.Lo, pw.Hi }

// GlobalBandRange returns the window's bmin/bmax band range, spanning every
// (k,s) it was resolved over.
func (pw PrWindow) GlobalBandRange() (bmin, bmax int) { return pw.Bmin, pw.Bmax }

// Intersects reports whether energy e lies within PLO window bounds when
// IsInt is false; always true for integer windows (band indices have no
// direct energy comparison).
func (pw PrWindow) Intersects(e float64) bool {
	if pw.IsInt {
		return true
	}
	return !math.IsNaN(e) && e >= pw.Lo && e <= pw.Hi
}
