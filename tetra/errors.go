// SPDX-License-Identifier: MIT
// Package tetra: sentinel error set.
package tetra

import "errors"

var (
	// ErrNoTetrahedra indicates an empty tetrahedron mesh was passed to a
	// function that requires at least one tetrahedron.
	ErrNoTetrahedra = errors.New("tetra: empty tetrahedron mesh")

	// ErrShapeMismatch indicates enk's shape disagrees with the requested
	// spin index or a tetrahedron's k-point indices are out of range.
	ErrShapeMismatch = errors.New("tetra: shape mismatch")

	// ErrBadVolt indicates a non-positive tetrahedron volume factor.
	ErrBadVolt = errors.New("tetra: volt must be positive")
)
