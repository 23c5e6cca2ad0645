package version

import "errors"

// Sentinel errors returned by Parse and Bump. All errors surface wrapped with
// context, so callers can match with errors.Is while still getting a
// descriptive message.
var (
	// ErrParse indicates the input does not match the version grammar.
	ErrParse = errors.New("not a valid version")

	// ErrRoundTrip indicates a parsed version did not re-render to its
	// input. This is a programming defect in the grammar, not bad input.
	ErrRoundTrip = errors.New("parsed version does not round-trip")

	// ErrUnknownKeyword indicates no segment accepts the bump keyword.
	ErrUnknownKeyword = errors.New("unknown bump keyword")

	// ErrSeparatorNotAllowed indicates the requested separator is outside
	// the matched segment's allowed set.
	ErrSeparatorNotAllowed = errors.New("separator not allowed")

	// ErrMissingSegment indicates a bump on a numeric segment the version
	// does not have.
	ErrMissingSegment = errors.New("missing version segment")

	// ErrDowngrade indicates a pre-release bump to an earlier tier than
	// the current one.
	ErrDowngrade = errors.New("illegal pre-release downgrade")

	// ErrNotSemver indicates the version cannot be expressed as a strict
	// semantic version.
	ErrNotSemver = errors.New("no semver equivalent")
)
