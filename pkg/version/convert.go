package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Semver renders the version as a strict semantic version where one exists:
// the release segments become major.minor.patch (absent segments read as 0),
// pre/post/dev qualifiers become a dotted prerelease chain in their canonical
// spellings, and the local segment becomes build metadata with "_" and "-"
// folded to ".". A nonzero epoch has no semver equivalent and is rejected.
//
// The mapping is presentational: semver precedence of the resulting
// prerelease chain does not reproduce the source grammar's ordering rules.
func (v *Version) Semver() (*semver.Version, error) {
	if e := &v.segs[kindEpoch]; e.present && e.value() != 0 {
		return nil, fmt.Errorf("%w: epoch %d cannot be expressed", ErrNotSemver, e.value())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d",
		v.segs[kindMajor].value(),
		v.segs[kindMinor].value(),
		v.segs[kindPatch].value())

	var pre []string
	if s := &v.segs[kindPre]; s.present {
		pre = append(pre, canonicalPre[strings.ToLower(s.tag)], strconv.Itoa(s.value()))
	}
	if s := &v.segs[kindPost]; s.present {
		pre = append(pre, "post", strconv.Itoa(s.value()))
	}
	if s := &v.segs[kindDev]; s.present {
		pre = append(pre, "dev", strconv.Itoa(s.value()))
	}
	if len(pre) > 0 {
		b.WriteString("-" + strings.Join(pre, "."))
	}
	if s := &v.segs[kindLocal]; s.present {
		b.WriteString("+" + localNormalizer.Replace(s.tag))
	}

	sv, err := semver.NewVersion(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSemver, err)
	}
	return sv, nil
}
