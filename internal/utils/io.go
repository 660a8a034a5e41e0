// Package utils provides internal utility functions used throughout the logger
// package.
//
// This package contains helper functions for file path handling used by the
// sinks. These utilities are primarily for internal use by the logger package
// and are not intended to be part of the public API.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
)

// EnsureParentDir creates the parent directory of the given file path when it
// does not exist yet. A path without a directory component is a no-op.
func EnsureParentDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return ewrap.New("path cannot be empty")
	}

	dir := filepath.Dir(filepath.Clean(path))
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	err := os.MkdirAll(dir, 0o700)
	if err != nil {
		return ewrap.Wrapf(err, "creating parent directory").
			WithMetadata("path", dir)
	}

	return nil
}
