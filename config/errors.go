// SPDX-License-Identifier: MIT
// Package config: sentinel error set.
package config

import "errors"

var (
	// ErrConfigInconsistent indicates nsite disagrees with len(atoms) or
	// len(shells).
	ErrConfigInconsistent = errors.New("config: nsite != len(atoms) or len(shells)")

	// ErrBadWindowLen indicates the window list has an odd length.
	ErrBadWindowLen = errors.New("config: window list must have even length")

	// ErrUnknownSmear indicates an unrecognised smear method.
	ErrUnknownSmear = errors.New("config: unknown smear method")
)
