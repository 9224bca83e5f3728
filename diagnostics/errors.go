// SPDX-License-Identifier: MIT
// Package diagnostics: sentinel error set.
package diagnostics

import "errors"

var (
	// ErrShapeMismatch indicates enk/occupy/weight disagree with the
	// group's window shape.
	ErrShapeMismatch = errors.New("diagnostics: shape mismatch")
)
