// SPDX-License-Identifier: MIT
// Package cmat: sentinel error set.
package cmat

import "errors"

var (
	// ErrNilMatrix indicates a nil receiver or argument.
	ErrNilMatrix = errors.New("cmat: nil matrix")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("cmat: dimension mismatch")

	// ErrNonSquare indicates a square matrix was required.
	ErrNonSquare = errors.New("cmat: matrix is not square")

	// ErrNotHermitian indicates a Hermitian matrix was required but the
	// input violates Hermiticity beyond the numeric tolerance.
	ErrNotHermitian = errors.New("cmat: matrix is not Hermitian within eps")

	// ErrEigenFailed indicates the underlying real-symmetric eigensolver
	// failed to converge.
	ErrEigenFailed = errors.New("cmat: eigendecomposition failed")

	// ErrNonPositiveOverlap indicates an eigenvalue of the overlap matrix
	// was not strictly positive, so (MM†)^(-1/2) is undefined.
	ErrNonPositiveOverlap = errors.New("cmat: overlap has a non-positive eigenvalue")
)
