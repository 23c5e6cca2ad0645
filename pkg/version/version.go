// Package version parses, renders, normalizes and bumps version strings
// following a PEP-0440-like grammar.
//
// A version decomposes into nine ranked segments: prefix, epoch, major,
// minor, patch, pre-release, post-release, dev-release and local. Render
// echoes the input exactly as parsed, Normalize produces the canonical
// spelling, and Bump increments one segment while resetting everything ranked
// after it. A Version is not safe for concurrent mutation; Clone before
// sharing.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// releaseKeyword strips the most relevant pre/dev qualifier instead of
// bumping a segment.
const releaseKeyword = "release"

// grammar is the concatenation of every segment's fragment in rank order,
// anchored so the whole input must match.
var grammar = regexp.MustCompile(buildGrammar())

func buildGrammar() string {
	var b strings.Builder
	b.WriteString(`\A`)
	for k := segmentKind(0); k < numSegments; k++ {
		b.WriteString(k.fragment())
	}
	b.WriteString(`\z`)
	return b.String()
}

// Version is a parsed version string: one segment per kind, in rank order.
// It is mutated in place by Bump and re-rendered with Render or Normalize.
type Version struct {
	segs [numSegments]segment
}

// Parse parses text into a Version. The whole string must match the grammar,
// with no surrounding whitespace. After a structural match the parsed
// segments are re-rendered and verified against the input; a mismatch means
// the grammar itself is ambiguous and surfaces as ErrRoundTrip.
func Parse(text string) (*Version, error) {
	m := grammar.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrParse, text)
	}
	group := func(name string) string {
		return m[grammar.SubexpIndex(name)]
	}

	v := &Version{}
	for k := segmentKind(0); k < numSegments; k++ {
		v.segs[k].kind = k
	}
	if p := group("prefix"); p != "" {
		v.segs[kindPrefix].set("", p, "")
	}
	if e := group("epoch"); e != "" {
		v.segs[kindEpoch].set("!", "", e)
	}
	v.segs[kindMajor].set("", "", group("major"))
	if n := group("minor"); n != "" {
		v.segs[kindMinor].set(".", "", n)
	}
	if n := group("patch"); n != "" {
		v.segs[kindPatch].set(".", "", n)
	}
	if t := group("preTag"); t != "" {
		v.segs[kindPre].set(group("preSep"), t, group("preNum"))
	}
	if t := group("postTag"); t != "" {
		v.segs[kindPost].set(group("postSep"), t, group("postNum"))
	}
	if t := group("devTag"); t != "" {
		v.segs[kindDev].set(group("devSep"), t, group("devNum"))
	}
	if l := group("local"); l != "" {
		v.segs[kindLocal].set("+", l, "")
	}

	// The grammar accepts unbounded digit runs; numerals that do not fit
	// in an int would silently saturate or wrap later, so they are
	// rejected here. Every numeral stored after this point is a valid int.
	for i := range v.segs {
		s := &v.segs[i]
		if !s.present || s.num == "" {
			continue
		}
		if _, err := strconv.Atoi(s.num); err != nil {
			return nil, fmt.Errorf("%w: %s numeral %q out of range", ErrParse, s.kind, s.num)
		}
	}

	if got := v.Render(); got != text {
		return nil, fmt.Errorf("%w: %q re-rendered as %q", ErrRoundTrip, text, got)
	}
	return v, nil
}

// Render returns the exact-echo form: immediately after Parse it equals the
// parsed input byte for byte.
func (v *Version) Render() string {
	var b strings.Builder
	for i := range v.segs {
		b.WriteString(v.segs[i].render())
	}
	return b.String()
}

// Normalize returns the canonical form: no v prefix, leading zeros stripped,
// canonical pre/post spellings, forced "." separators on post and dev,
// explicit zero numerals, and "."-separated local parts.
func (v *Version) Normalize() string {
	var b strings.Builder
	for i := range v.segs {
		b.WriteString(v.segs[i].normalize())
	}
	return b.String()
}

// String is an alias for Render.
func (v *Version) String() string {
	return v.Render()
}

// Bump applies one bump instruction. The keyword is matched case-insensitively
// against the segments' accepted keywords; the first segment in rank order
// that accepts it is mutated and every segment after it is reset. sep, when
// not empty, is the explicit separator to use and must belong to the matched
// segment's allowed set. Validation failures leave the version untouched.
//
// The reserved keyword "release" is handled specially: segments are probed in
// reverse rank order and the first present pre-release or dev-release
// qualifier is cleared, leaving everything else alone. Releasing a version
// with no such qualifier is a no-op.
func (v *Version) Bump(keyword, sep string) error {
	if strings.EqualFold(keyword, releaseKeyword) {
		if sep != "" {
			return fmt.Errorf("%w: %q takes no separator", ErrSeparatorNotAllowed, releaseKeyword)
		}
		for i := numSegments - 1; i >= 0; i-- {
			if v.segs[i].release() {
				break
			}
		}
		return nil
	}

	cascade := false
	for i := range v.segs {
		if cascade {
			v.segs[i].reset()
			continue
		}
		matched, err := v.segs[i].bump(keyword, sep)
		if err != nil {
			return err
		}
		if matched {
			cascade = true
		}
	}
	if !cascade {
		return fmt.Errorf("%w: nothing matched for bumping %q", ErrUnknownKeyword, keyword)
	}
	return nil
}

// Clone returns an independent copy. Mutating the copy never affects the
// original, so callers needing concurrent use can clone before bumping.
func (v *Version) Clone() *Version {
	c := *v
	return &c
}

// Keywords returns every accepted bump keyword, in segment rank order, with
// the reserved "release" keyword last. The result is a fresh slice the caller
// may use to validate input or present choices.
func Keywords() []string {
	kws := make([]string, 0, 17)
	for k := segmentKind(0); k < numSegments; k++ {
		kws = append(kws, bumpKeywords[k]...)
	}
	return append(kws, releaseKeyword)
}

// SplitInstruction splits a bump instruction into keyword and explicit
// separator: a leading ".", "_" or "-" designates the separator and the rest
// is the keyword. An instruction without such a prefix has no explicit
// separator.
func SplitInstruction(instruction string) (keyword, sep string) {
	if len(instruction) > 0 && strings.ContainsAny(instruction[:1], "._-") {
		return instruction[1:], instruction[:1]
	}
	return instruction, ""
}
