// SPDX-License-Identifier: MIT
// Package orthonorm: sentinel error set.
package orthonorm

import "errors"

var (
	// ErrInsufficientBands indicates ib3 < d (per-group) or ib3 < D (joint):
	// too few usable bands to orthonormalise the requested rank.
	ErrInsufficientBands = errors.New("orthonorm: insufficient bands for orthonormalisation rank")

	// ErrEmptyGroups indicates an empty group list was passed to a mode
	// that requires at least one group.
	ErrEmptyGroups = errors.New("orthonorm: no groups to orthonormalise")
)
