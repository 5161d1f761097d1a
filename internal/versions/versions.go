// Package versions extracts version numbers from tool output and checks
// them against semver constraints.
package versions

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoVersion is the sentinel you can check with errors.Is.
var ErrNoVersion = errors.New("no version found")

// versionRe matches version-like tokens inside arbitrary tool output:
// an optional leading v, dotted numeric segments, and an optional
// suffix like -r1188 or -rc.1.
var versionRe = regexp.MustCompile(`(?i)\bv?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.]+))?\b`)

// ParseFirst returns the first version-like token from s, normalized to
// valid semver. Partials are zero-filled ("1.9" -> "1.9.0") and any
// non-semver suffix is dropped.
//
// Typical inputs:
//
//	"samtools 1.9\nUsing htslib 1.9"  -> "1.9.0"
//	"Version: 0.7.17-r1188"           -> "0.7.17"
//	"Python 3.6.5 :: Anaconda, Inc."  -> "3.6.5"
func ParseFirst(s string) (string, error) {
	for _, m := range versionRe.FindAllStringSubmatch(s, -1) {
		norm := normalize(m[1], m[2], m[3], m[4])
		if v, err := semver.NewVersion(norm); err == nil {
			return v.String(), nil
		}
		// retry without the suffix; tokens like 0.7.17-r1188 carry a
		// prerelease part semver rejects.
		norm = normalize(m[1], m[2], m[3], "")
		if v, err := semver.NewVersion(norm); err == nil {
			return v.String(), nil
		}
	}

	return "", fmt.Errorf("%w in %q", ErrNoVersion, firstLine(s))
}

// Satisfies reports whether the version (possibly embedded in tool
// output) matches the given npm-style constraint, e.g. ">=1.9", "^0.7".
func Satisfies(output, constraint string) (bool, error) {
	raw, err := ParseFirst(output)
	if err != nil {
		return false, err
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", raw, err)
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}

	return c.Check(v), nil
}

// Compare returns 1 if a > b, -1 if a < b, 0 if equal. Both arguments
// may be partial ("1.9" is treated as "1.9.0").
func Compare(a, b string) (int, error) {
	av, err := parseLoose(a)
	if err != nil {
		return 0, err
	}
	bv, err := parseLoose(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}

func parseLoose(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err == nil {
		return v, nil
	}
	raw, perr := ParseFirst(s)
	if perr != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return semver.NewVersion(raw)
}

func normalize(maj, min, pat, pre string) string {
	if min == "" {
		min = "0"
	}
	if pat == "" {
		pat = "0"
	}
	n := maj + "." + min + "." + pat
	if pre != "" {
		n += "-" + pre
	}
	return n
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
