// Package pathutil resolves manifest paths to canonical absolute paths.
//
// Resolution is a pure function of its inputs. The base directory and home
// directory are passed in explicitly instead of being read from the process
// environment, so callers stay deterministic and testable.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve turns a raw manifest path into a canonical absolute path.
//
// Supported shapes:
//   - "~" or "~/sub/dir": relative to home
//   - "/abs/path": used as-is
//   - anything else (including "../sibling"): relative to base
//
// The result is cleaned but not checked against the filesystem; a path for a
// directory that does not exist yet is valid.
func Resolve(raw, base, home string) (string, error) {
	switch {
	case raw == "":
		return "", fmt.Errorf("empty path")

	case raw == "~":
		if home == "" {
			return "", fmt.Errorf("cannot resolve %q: home directory unknown", raw)
		}
		return filepath.Clean(home), nil

	case strings.HasPrefix(raw, "~/"):
		if home == "" {
			return "", fmt.Errorf("cannot resolve %q: home directory unknown", raw)
		}
		return filepath.Join(home, raw[2:]), nil

	case strings.HasPrefix(raw, "~"):
		// "~user" expansion is a shell feature, not supported here.
		return "", fmt.Errorf("unsupported path %q: ~user expansion is not supported", raw)

	case filepath.IsAbs(raw):
		return filepath.Clean(raw), nil

	default:
		if !filepath.IsAbs(base) {
			return "", fmt.Errorf("cannot resolve %q: base %q is not absolute", raw, base)
		}
		return filepath.Join(base, raw), nil
	}
}
