package fstream

import "path/filepath"

// NormalizePath converts a path to its clean native form. Full
// canonicalization (symlink resolution, base-relative mapping) is the
// caller's concern; the stream only needs a path the platform accepts.
func NormalizePath(path string) string {
	return filepath.Clean(filepath.FromSlash(path))
}

// DisplayName derives a short human-readable name for a path: its final
// segment. Used for stream naming in logs and errors.
func DisplayName(path string) string {
	return filepath.Base(NormalizePath(path))
}
