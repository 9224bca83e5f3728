// SPDX-License-Identifier: MIT
// Package ioformat: sentinel error set.
package ioformat

import "errors"

var (
	// ErrShapeMismatch indicates the supplied matrices/DOS arrays disagree
	// with the declared nproj/nkpt/nspin or ndim/nmesh header counts.
	ErrShapeMismatch = errors.New("ioformat: shape mismatch")
)
