// Package pathnavtest provides golden-value diffing for pathnav's batch
// command output, independent of testify's require.Equal.
package pathnavtest

import (
	"github.com/google/go-cmp/cmp"
)

// Diff returns a human-readable description of how got differs from
// want, or "" if they're equal.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
