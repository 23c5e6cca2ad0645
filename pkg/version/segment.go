package version

import (
	"fmt"
	"strconv"
	"strings"
)

// segmentKind identifies one of the nine version segments. The constant order
// is the rank order: it fixes how the grammar fragments concatenate, how a
// version renders, and which segments a bump cascades over.
type segmentKind int

const (
	kindPrefix segmentKind = iota
	kindEpoch
	kindMajor
	kindMinor
	kindPatch
	kindPre
	kindPost
	kindDev
	kindLocal

	numSegments
)

func (k segmentKind) String() string {
	switch k {
	case kindPrefix:
		return "prefix"
	case kindEpoch:
		return "epoch"
	case kindMajor:
		return "major"
	case kindMinor:
		return "minor"
	case kindPatch:
		return "patch"
	case kindPre:
		return "pre-release"
	case kindPost:
		return "post-release"
	case kindDev:
		return "dev-release"
	case kindLocal:
		return "local"
	}
	return "unknown"
}

// fragment returns the named capture-group grammar fragment the kind
// contributes to the full version grammar. The full grammar is the
// concatenation of all fragments in rank order, anchored at both ends.
func (k segmentKind) fragment() string {
	switch k {
	case kindPrefix:
		return `(?P<prefix>[vV])?`
	case kindEpoch:
		return `(?:(?P<epoch>[0-9]+)!)?`
	case kindMajor:
		return `(?P<major>[0-9]+)`
	case kindMinor:
		return `(?:\.(?P<minor>[0-9]+))?`
	case kindPatch:
		return `(?:\.(?P<patch>[0-9]+))?`
	case kindPre:
		return `(?:(?P<preSep>[._-])?(?P<preTag>(?i:alpha|beta|preview|pre|rc|a|b|c))(?P<preNum>[0-9]+)?)?`
	case kindPost:
		return `(?:(?P<postSep>[._-])?(?P<postTag>(?i:post|rev|r))(?P<postNum>[0-9]+)?)?`
	case kindDev:
		return `(?:(?P<devSep>[._-])?(?P<devTag>(?i:dev))(?P<devNum>[0-9]+)?)?`
	case kindLocal:
		return `(?:\+(?P<local>[a-zA-Z0-9._-]+))?`
	}
	return ""
}

// bumpKeywords lists the keywords each kind accepts. Kinds without an entry
// (prefix, epoch, local) cannot be bumped directly.
var bumpKeywords = [numSegments][]string{
	kindMajor: {"major"},
	kindMinor: {"minor"},
	kindPatch: {"patch", "micro"},
	kindPre:   {"a", "alpha", "b", "beta", "rc", "c", "pre", "preview"},
	kindPost:  {"post", "rev", "r"},
	kindDev:   {"dev"},
}

// allowedSeps holds the separator characters valid for each kind. An explicit
// separator passed to Bump must be one of these.
var allowedSeps = [numSegments]string{
	kindEpoch: "!",
	kindMinor: ".",
	kindPatch: ".",
	kindPre:   "._-",
	kindPost:  "._-",
	kindDev:   "._-",
	kindLocal: "+",
}

// canonicalPre maps every accepted pre-release spelling, lowercased, to its
// normal form.
var canonicalPre = map[string]string{
	"a":       "a",
	"alpha":   "a",
	"b":       "b",
	"beta":    "b",
	"rc":      "rc",
	"c":       "rc",
	"pre":     "rc",
	"preview": "rc",
}

// preTier orders the canonical pre-release spellings: a < b < rc. Bumping may
// only move forward through the progression.
var preTier = map[string]int{
	"a":  0,
	"b":  1,
	"rc": 2,
}

var localNormalizer = strings.NewReplacer("_", ".", "-", ".")

// segment is one typed component of a version string. All fields except kind
// hold exactly what the grammar captured, so rendering can echo the input
// byte for byte. A segment with present == false renders empty.
type segment struct {
	kind    segmentKind
	present bool
	sep     string
	tag     string
	num     string
}

func (s *segment) set(sep, tag, num string) {
	s.present = true
	s.sep, s.tag, s.num = sep, tag, num
}

func (s *segment) clear() {
	s.present = false
	s.sep, s.tag, s.num = "", "", ""
}

// value reads the numeric payload. A present segment whose numeral was
// omitted (e.g. "1.0rc") reads as 0. The conversion cannot fail: Parse
// rejects out-of-range numerals, and bumps only store Itoa output.
func (s *segment) value() int {
	if s.num == "" {
		return 0
	}
	n, _ := strconv.Atoi(s.num)
	return n
}

// render returns the exact-echo form: the captured separator, spelling and
// numeral, untouched.
func (s *segment) render() string {
	if !s.present {
		return ""
	}
	switch s.kind {
	case kindPrefix:
		return s.tag
	case kindEpoch:
		return s.num + s.sep
	case kindMajor, kindMinor, kindPatch:
		return s.sep + s.num
	case kindLocal:
		return s.sep + s.tag
	default:
		return s.sep + s.tag + s.num
	}
}

// normalize returns the canonical form: preferred spelling, forced separator,
// leading zeros stripped, omitted numerals made explicit.
func (s *segment) normalize() string {
	if !s.present {
		return ""
	}
	switch s.kind {
	case kindPrefix:
		return ""
	case kindEpoch:
		return strconv.Itoa(s.value()) + "!"
	case kindMajor:
		return strconv.Itoa(s.value())
	case kindMinor, kindPatch:
		return "." + strconv.Itoa(s.value())
	case kindPre:
		return canonicalPre[strings.ToLower(s.tag)] + strconv.Itoa(s.value())
	case kindPost:
		return ".post" + strconv.Itoa(s.value())
	case kindDev:
		return ".dev" + strconv.Itoa(s.value())
	case kindLocal:
		return "+" + localNormalizer.Replace(s.tag)
	}
	return ""
}

// reset is what a bump does to the segments ranked after the bumped one.
// Present numeric segments go back to zero but stay present; qualifier
// segments are dropped entirely.
func (s *segment) reset() {
	switch s.kind {
	case kindMinor, kindPatch:
		if s.present {
			s.num = "0"
		}
	case kindPre, kindPost, kindDev, kindLocal:
		s.clear()
	}
}

// bump applies keyword to this segment. It reports false when the keyword
// belongs to another segment. A non-nil error means the keyword matched but
// the bump is invalid; the segment is left untouched in that case.
func (s *segment) bump(keyword, sep string) (bool, error) {
	kw := strings.ToLower(keyword)
	if !acceptsKeyword(s.kind, kw) {
		return false, nil
	}
	if sep != "" && !strings.Contains(allowedSeps[s.kind], sep) {
		return false, fmt.Errorf("%w: %q is not a valid %s separator", ErrSeparatorNotAllowed, sep, s.kind)
	}

	switch s.kind {
	case kindMajor, kindMinor, kindPatch:
		if !s.present {
			return false, fmt.Errorf("%w: no %s segment to bump", ErrMissingSegment, s.kind)
		}
		s.num = strconv.Itoa(s.value() + 1)
	case kindPre:
		if !s.present {
			s.set(sep, kw, "0")
			break
		}
		cur := preTier[canonicalPre[strings.ToLower(s.tag)]]
		req := preTier[canonicalPre[kw]]
		switch {
		case req == cur:
			if sep != "" && sep != s.sep {
				return false, fmt.Errorf("%w: cannot change the %s separator while bumping", ErrSeparatorNotAllowed, s.kind)
			}
			s.num = strconv.Itoa(s.value() + 1)
		case req < cur:
			return false, fmt.Errorf("%w: cannot go back from %q to %q", ErrDowngrade, s.tag, kw)
		default:
			if sep == "" {
				sep = s.sep
			}
			s.set(sep, kw, "0")
		}
	case kindPost:
		if s.present {
			s.num = strconv.Itoa(s.value() + 1)
		} else {
			if sep == "" {
				sep = "."
			}
			s.set(sep, kw, "0")
		}
	case kindDev:
		if s.present {
			s.num = strconv.Itoa(s.value() + 1)
		} else {
			if sep == "" {
				sep = "."
			}
			s.set(sep, "dev", "0")
		}
	}
	return true, nil
}

// release reports whether this segment is a releasable qualifier, clearing it
// if so. Only present pre-release and dev-release segments release.
func (s *segment) release() bool {
	if (s.kind != kindPre && s.kind != kindDev) || !s.present {
		return false
	}
	s.clear()
	return true
}

func acceptsKeyword(k segmentKind, kw string) bool {
	for _, accepted := range bumpKeywords[k] {
		if kw == accepted {
			return true
		}
	}
	return false
}
