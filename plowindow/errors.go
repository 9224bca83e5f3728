// SPDX-License-Identifier: MIT
// Package plowindow: sentinel error set.
package plowindow

import "errors"

var (
	// ErrBadWindowLen indicates len(window)/2 is neither 1 nor len(groups).
	ErrBadWindowLen = errors.New("plowindow: window length must be 2 or 2*len(groups)")

	// ErrBadWindowOrder indicates bwin.hi < bwin.lo, or bwin.hi == bwin.lo
	// for an energy window.
	ErrBadWindowOrder = errors.New("plowindow: window upper bound is below lower bound")

	// ErrMixedWindowKind indicates a window pair mixing integer and float
	// semantics.
	ErrMixedWindowKind = errors.New("plowindow: window pair must be both integer or both float")

	// ErrWindowOutOfRange indicates an integer window outside [1,nband], or a
	// float window that does not intersect [min enk, max enk].
	ErrWindowOutOfRange = errors.New("plowindow: window out of range")

	// ErrEmptyWindow indicates kwin[k,s,1] < kwin[k,s,0] after resolution.
	ErrEmptyWindow = errors.New("plowindow: empty band window")
)
