// SPDX-License-Identifier: MIT
// Package plogroup: sentinel error set.
package plogroup

import "errors"

var (
	// ErrUnknownShell indicates a configured shell label outside the closed
	// enumeration {s,p,d,f,d_t2g,d_eg}.
	ErrUnknownShell = errors.New("plogroup: unknown shell")

	// ErrTraitCountMismatch indicates len(group.Pr) != 2*l+1 on entry.
	ErrTraitCountMismatch = errors.New("plogroup: projector-trait count mismatch")

	// ErrConfigInconsistent indicates nsite disagrees with len(atoms) or len(shell).
	ErrConfigInconsistent = errors.New("plogroup: nsite inconsistent with atoms/shell")

	// ErrBadSiteIndex indicates a configured atom entry that does not parse
	// to a positive site index.
	ErrBadSiteIndex = errors.New("plogroup: atom entry is not a positive site index")
)
