// Package version encodes plugin versions the way the server stores them:
// a "major.minor" string packed into a 16-bit integer as (major<<8)|minor.
package version

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

var (
	// ErrMalformed is returned when a version string is not "major.minor".
	ErrMalformed = errors.New(`expected a two position semvar string, e.g. "1.2"`)

	// ErrOutOfRange is returned when a version part does not fit in 8 bits.
	ErrOutOfRange = errors.New("major/minor version must fit in u8")
)

// Version is an encoded plugin version.
type Version uint16

// Encode packs major and minor.
func Encode(major, minor uint8) Version {
	return Version(uint16(major)<<8 | uint16(minor))
}

// Parse validates s and returns its encoding.
func Parse(s string) (Version, error) {
	if strings.Count(s, ".") != 1 {
		return 0, errors.Wrapf(ErrMalformed, "got %q", s)
	}

	majorStr, minorStr, _ := strings.Cut(s, ".")

	major, err := parsePart(s, majorStr)
	if err != nil {
		return 0, err
	}

	minor, err := parsePart(s, minorStr)
	if err != nil {
		return 0, err
	}

	return Encode(major, minor), nil
}

// MustParse is Parse for static declarations; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

func parsePart(full, part string) (uint8, error) {
	if part == "" || strings.TrimLeft(part, "0123456789") != "" {
		return 0, errors.Wrapf(ErrMalformed, "got %q", full)
	}

	n, err := strconv.ParseUint(part, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(ErrOutOfRange, "got %q", full)
	}

	return uint8(n), nil
}

// Major returns the high byte.
func (v Version) Major() uint8 { return uint8(v >> 8) }

// Minor returns the low byte.
func (v Version) Minor() uint8 { return uint8(v) }

// Decode returns the major and minor parts of v.
func Decode(v Version) (major, minor uint8) {
	return v.Major(), v.Minor()
}

// String renders v as "major.minor".
func (v Version) String() string {
	return strconv.Itoa(int(v.Major())) + "." + strconv.Itoa(int(v.Minor()))
}

// Semver returns v as a semantic version with a zero patch level.
func (v Version) Semver() *semver.Version {
	return semver.New(uint64(v.Major()), uint64(v.Minor()), 0, "", "")
}

// Satisfies reports whether v matches a semver constraint such as ">= 1.2".
func (v Version) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version constraint %q", constraint)
	}

	return c.Check(v.Semver()), nil
}
