package version

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/commitpin/pkg/errors"
)

// rangePrefix marks a range specifier.
const rangePrefix = "~"

// Mode selects how two version strings are compared.
type Mode int

const (
	// Exact compares versions as raw strings.
	Exact Mode = iota
	// Range compares the major and minor components numerically.
	Range
)

func (m Mode) String() string {
	if m == Range {
		return "range"
	}
	return "exact"
}

// ModeOf returns Range for versions starting with "~" and Exact otherwise.
func ModeOf(v string) Mode {
	if strings.HasPrefix(v, rangePrefix) {
		return Range
	}
	return Exact
}

// Effective strips a source prefix from a requested version. Declarations
// like "owner/repo#0.1.3" yield "0.1.3"; anything after the last '#' wins.
func Effective(raw string) string {
	if i := strings.LastIndexByte(raw, '#'); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// Validate checks that v starts with "~" or a decimal digit.
func Validate(v string) error {
	if v == "" {
		return errors.New(errors.ErrCodeFormat, "version format not supported: empty version")
	}
	if c := v[0]; c != '~' && (c < '0' || c > '9') {
		return errors.New(errors.ErrCodeFormat, "version format not supported: %s", v)
	}
	return nil
}

// Satisfies reports whether requested is covered by the whitelisted floor.
// Exact mode is a raw string comparison; range mode compares major and minor.
func Satisfies(requested, floor string) bool {
	if ModeOf(requested) == Range {
		return MajorMinorAtMost(requested, floor)
	}
	return requested <= floor
}

// MatchesTag reports whether a remote tag name corresponds to requested:
// "v"+requested or requested itself, or for ranges any tag whose major and
// minor are not below the requested ones.
func MatchesTag(requested, tag string) bool {
	if tag == "v"+requested || tag == requested {
		return true
	}
	return ModeOf(requested) == Range && MajorMinorAtMost(requested, tag)
}

// MajorMinorAtMost reports whether a's major and minor components are each
// at most b's. Every "~" is removed first. Components are read as their
// leading decimal digits, so "v1" and a missing component both read as 0.
func MajorMinorAtMost(a, b string) bool {
	aMajor, aMinor := majorMinor(a)
	bMajor, bMinor := majorMinor(b)
	return aMajor <= bMajor && aMinor <= bMinor
}

func majorMinor(v string) (int64, int64) {
	parts := strings.Split(strings.ReplaceAll(v, rangePrefix, ""), ".")
	major := leadingInt(parts[0])
	var minor int64
	if len(parts) > 1 {
		minor = leadingInt(parts[1])
	}
	return major, minor
}

// leadingInt parses the leading run of digits in s, returning 0 when there
// is none. Values too large for int64 saturate.
func leadingInt(s string) int64 {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}
