package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned for answers that are neither a keyword nor
// a semantic version.
var ErrInvalidVersion = errors.New("invalid version")

// SuggestVersion returns the answer proposed to the user for the given
// release type: the keyword itself for skip and internal, the incremented
// version otherwise.
func SuggestVersion(current string, releaseType ReleaseType) (string, error) {
	switch releaseType {
	case ReleaseSkip, ReleaseInternal:
		return string(releaseType), nil
	case "":
		return string(ReleaseSkip), nil
	}

	version, err := mmsemver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("%w: current version %q: %w", ErrInvalidVersion, current, err)
	}

	var next mmsemver.Version
	switch releaseType {
	case ReleaseMajor:
		next = version.IncMajor()
	case ReleaseMinor:
		next = version.IncMinor()
	case ReleasePatch:
		next = version.IncPatch()
	default:
		return "", fmt.Errorf("unknown release type %q", releaseType)
	}
	return next.String(), nil
}

// NextInternalVersion bumps the prerelease counter of a prerelease version
// (1.2.0-alpha.0 becomes 1.2.0-alpha.1) or the patch of a stable one
// (1.2.0 becomes 1.2.1).
func NextInternalVersion(current string) (string, error) {
	version, err := mmsemver.StrictNewVersion(current)
	if err != nil {
		return "", fmt.Errorf("%w: current version %q: %w", ErrInvalidVersion, current, err)
	}

	if version.Prerelease() == "" {
		return version.IncPatch().String(), nil
	}

	next, err := version.SetPrerelease(incrementPrerelease(version.Prerelease()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidVersion, err)
	}
	return next.String(), nil
}

// incrementPrerelease increments the last numeric identifier or appends ".0"
// when there is none.
func incrementPrerelease(prerelease string) string {
	identifiers := strings.Split(prerelease, ".")
	for i := len(identifiers) - 1; i >= 0; i-- {
		number, err := strconv.Atoi(identifiers[i])
		if err != nil {
			continue
		}
		identifiers[i] = strconv.Itoa(number + 1)
		return strings.Join(identifiers, ".")
	}
	return prerelease + ".0"
}

// ValidateVersionAnswer accepts "skip", "internal" or a full semantic
// version greater than the current one.
func ValidateVersionAnswer(answer, current string) error {
	switch ReleaseType(answer) {
	case ReleaseSkip, ReleaseInternal:
		return nil
	}

	candidate := "v" + answer
	if !semver.IsValid(candidate) || semver.Canonical(candidate) != candidate {
		return fmt.Errorf("%w: %q, type a semantic version, %q or %q", ErrInvalidVersion, answer, ReleaseSkip, ReleaseInternal)
	}

	if currentTag := "v" + current; semver.IsValid(currentTag) && semver.Compare(candidate, currentTag) <= 0 {
		return fmt.Errorf("%w: %q is not greater than the current version %q", ErrInvalidVersion, answer, current)
	}

	return nil
}
