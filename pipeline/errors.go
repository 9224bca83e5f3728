// SPDX-License-Identifier: MIT
// Package pipeline: sentinel error set.
package pipeline

import "errors"

var (
	// ErrNoGroups indicates an empty raw group list was supplied.
	ErrNoGroups = errors.New("pipeline: no projector groups supplied")
)
