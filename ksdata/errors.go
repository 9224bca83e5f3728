// SPDX-License-Identifier: MIT
// Package ksdata: sentinel error set.
// This file defines ONLY package-level sentinel errors. All functions in
// this package MUST return these sentinels (wrapped with context via
// fmt.Errorf("%w", ...) where useful) and tests MUST check them via
// errors.Is.
package ksdata

import "errors"

var (
	// ErrNilData indicates a nil *KSData receiver or argument.
	ErrNilData = errors.New("ksdata: nil KSData")

	// ErrShapeMismatch indicates that enk, chipsi, weight, or occupy disagree
	// on nband, nkpt, or nspin.
	ErrShapeMismatch = errors.New("ksdata: shape mismatch")

	// ErrBadWeight indicates a negative weight or a weight vector that does
	// not sum to 1 within tolerance.
	ErrBadWeight = errors.New("ksdata: invalid k-point weight")

	// ErrBadTetra indicates a tetrahedron record referencing an out-of-range
	// k-point index, or a non-positive volt.
	ErrBadTetra = errors.New("ksdata: invalid tetrahedron data")
)
