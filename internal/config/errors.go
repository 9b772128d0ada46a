// Package config provides configuration types and defaults for vidsweep.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidProfile indicates a filter profile file that cannot be read or decoded.
	ErrInvalidProfile = errors.New("invalid filter profile")

	// ErrMissingRoot indicates no directory was given to scan.
	ErrMissingRoot = errors.New("scan directory is required")
)
