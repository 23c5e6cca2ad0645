package version

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"1",
		"1.2",
		"1.2.3",
		"v1.2.3",
		"V2",
		"1!2.3",
		"0!0",
		"1.02.3",
		"01.0",
		"1.2.3rc1",
		"1.2_rc2",
		"1.0-preview3",
		"1.0alpha",
		"1.0C2",
		"1.0.pre1",
		"1.0.post",
		"1.0_rev4",
		"1.0r1",
		"1.0.dev",
		"1.0-dev5",
		"1.0.post1.dev2",
		"1.0a1.post2.dev3+local",
		"1.0+ubuntu-1",
		"v1!2.03.4RC05.post6.dev07+A_b-c",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := v.Render(); got != input {
				t.Errorf("Expected render %q, got: %q", input, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		" 1.0",
		"1.0 ",
		"1.0\n",
		"x1.0",
		"v.1",
		"1..2",
		"1.2.3.4",
		"1.0a.1",
		"1.0-1",
		"1.0-",
		"!1",
		"1!",
		"1.0+",
		"1.0+foo bar",
		"1.0.x",
		"99999999999999999999",
		"1.99999999999999999999",
		"99999999999999999999!1",
		"1.0rc99999999999999999999",
		"1.0.post99999999999999999999",
		"1.0.dev99999999999999999999",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse for %q, got: %v", input, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.02.3", "1.2.3"},
		{"v1.0", "1.0"},
		{"V1", "1"},
		{"09!07", "9!7"},
		{"1.2_rc2", "1.2rc2"},
		{"1.0alpha", "1.0a0"},
		{"1.0-beta03", "1.0b3"},
		{"1.0-preview3", "1.0rc3"},
		{"1.0C2", "1.0rc2"},
		{"1.0.pre1", "1.0rc1"},
		{"1.0post", "1.0.post0"},
		{"1.0-r4", "1.0.post4"},
		{"1.0_rev", "1.0.post0"},
		{"1.0dev", "1.0.dev0"},
		{"1.0-DEV2", "1.0.dev2"},
		{"1.0+ubuntu-1", "1.0+ubuntu.1"},
		{"1.0+foo_bar", "1.0+foo.bar"},
		{"v1!2.03.4RC05.post6.dev07+A_b-c", "1!2.3.4rc5.post6.dev7+A.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := v.Normalize(); got != tt.expected {
				t.Errorf("Expected %q, got: %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"v1.02.3", "1.2_rc2", "1.0alpha", "1.0-r4", "1.0dev", "1.0+ubuntu-1",
	}

	for _, input := range inputs {
		v, err := Parse(input)
		if err != nil {
			t.Fatalf("Expected no error for %q, got: %v", input, err)
		}
		once := v.Normalize()
		again, err := Parse(once)
		if err != nil {
			t.Fatalf("Expected normalized form %q to parse, got: %v", once, err)
		}
		if got := again.Normalize(); got != once {
			t.Errorf("Expected normalize to be idempotent for %q: %q != %q", input, got, once)
		}
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		keyword  string
		sep      string
		expected string
		err      error
	}{
		{"major cascade", "1.2.3", "major", "", "2.0.0", nil},
		{"minor cascade", "1.2.3", "minor", "", "1.3.0", nil},
		{"patch", "1.2.3", "patch", "", "1.2.4", nil},
		{"micro is patch", "1.2.3", "micro", "", "1.2.4", nil},
		{"minor without patch", "1.2", "minor", "", "1.3", nil},
		{"minor clears qualifiers", "1.2.3rc1", "minor", "", "1.3.0", nil},
		{"echo preserves padding", "v01.02", "minor", "", "v01.3", nil},
		{"major keeps epoch drops local", "2!1.2.3+abc", "major", "", "2!2.0.0", nil},
		{"bare major", "1", "major", "", "2", nil},
		{"missing minor", "1", "minor", "", "", ErrMissingSegment},
		{"missing patch", "1.2", "patch", "", "", ErrMissingSegment},
		{"unknown keyword", "1.0", "banana", "", "", ErrUnknownKeyword},
		{"create dev", "1.2", "dev", "", "1.2.dev0", nil},
		{"rc clears dev", "1.2.dev0", "rc", "", "1.2rc0", nil},
		{"pre downgrade", "1.0rc1", "a", "", "", ErrDowngrade},
		{"pre upgrade", "1.0a1", "rc", "", "1.0rc0", nil},
		{"pre same tier without numeral", "1.0rc", "rc", "", "1.0rc1", nil},
		{"pre same tier", "1.0b2", "b", "", "1.0b3", nil},
		{"pre same tier other spelling", "1.0a1", "alpha", "", "1.0a2", nil},
		{"create pre keeps spelling", "1.0", "alpha", "", "1.0alpha0", nil},
		{"create pre with separator", "1.0", "b", "_", "1.0_b0", nil},
		{"pre separator change", "1.0a1", "a", ".", "", ErrSeparatorNotAllowed},
		{"keyword case insensitive", "1.0", "RC", "", "1.0rc0", nil},
		{"create post", "1.0", "post", "", "1.0.post0", nil},
		{"increment post", "1.0.post0", "post", "", "1.0.post1", nil},
		{"post without numeral", "1.0_rev", "rev", "", "1.0_rev1", nil},
		{"post ignores new spelling", "1.0.post3", "r", "", "1.0.post4", nil},
		{"create post with separator", "1.0", "rev", "-", "1.0-rev0", nil},
		{"post clears dev", "1.0.post1.dev2", "post", "", "1.0.post2", nil},
		{"dev of a pre-release", "1.0rc1", "dev", "", "1.0rc1.dev0", nil},
		{"increment dev", "1.0.dev5", "dev", "", "1.0.dev6", nil},
		{"dev separator rejected", "1.0", "dev", "+", "", ErrSeparatorNotAllowed},
		{"minor separator rejected", "1.2.3", "minor", "_", "", ErrSeparatorNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			err = v.Bump(tt.keyword, tt.sep)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Expected %v, got: %v", tt.err, err)
				}
				// Failed validation must not leave partial mutation behind.
				if got := v.Render(); got != tt.input {
					t.Errorf("Expected version unchanged after error, got: %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := v.Render(); got != tt.expected {
				t.Errorf("Expected %q, got: %q", tt.expected, got)
			}
		})
	}
}

func TestBumpSequence(t *testing.T) {
	v, err := Parse("1.2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	steps := []struct {
		keyword  string
		expected string
	}{
		{"dev", "1.2.dev0"},
		{"dev", "1.2.dev1"},
		{"rc", "1.2rc0"},
		{"rc", "1.2rc1"},
		{"release", "1.2"},
		{"patch", ""},
	}
	for _, step := range steps {
		if step.keyword == "patch" {
			if err := v.Bump(step.keyword, ""); !errors.Is(err, ErrMissingSegment) {
				t.Fatalf("Expected ErrMissingSegment, got: %v", err)
			}
			continue
		}
		if err := v.Bump(step.keyword, ""); err != nil {
			t.Fatalf("Expected no error bumping %q, got: %v", step.keyword, err)
		}
		if got := v.Render(); got != step.expected {
			t.Fatalf("Expected %q after bumping %q, got: %q", step.expected, step.keyword, got)
		}
	}
}

func TestRelease(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clears pre", "1.2rc2", "1.2"},
		{"no-op on final", "1.0", "1.0"},
		{"leaves post alone", "1.0.post1", "1.0.post1"},
		{"leaves local alone", "1.2.3b1+local", "1.2.3+local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if err := v.Bump("release", ""); err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := v.Render(); got != tt.expected {
				t.Errorf("Expected %q, got: %q", tt.expected, got)
			}
		})
	}
}

func TestReleaseClearsDevBeforePre(t *testing.T) {
	// A version carrying both qualifiers loses only the dev-release on the
	// first release; the pre-release survives until a second one.
	v, err := Parse("1.2rc2.dev3")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := v.Bump("release", ""); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := v.Render(); got != "1.2rc2" {
		t.Fatalf("Expected %q, got: %q", "1.2rc2", got)
	}

	if err := v.Bump("release", ""); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := v.Render(); got != "1.2" {
		t.Errorf("Expected %q, got: %q", "1.2", got)
	}
}

func TestReleaseRejectsSeparator(t *testing.T) {
	v, err := Parse("1.2rc2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := v.Bump("release", "."); !errors.Is(err, ErrSeparatorNotAllowed) {
		t.Errorf("Expected ErrSeparatorNotAllowed, got: %v", err)
	}
}

func TestKeywords(t *testing.T) {
	expected := []string{
		"major", "minor", "patch", "micro",
		"a", "alpha", "b", "beta", "rc", "c", "pre", "preview",
		"post", "rev", "r", "dev",
		"release",
	}

	got := Keywords()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d keywords, got %d: %v", len(expected), len(got), got)
	}
	for i, kw := range expected {
		if got[i] != kw {
			t.Errorf("Expected keyword %q at %d, got: %q", kw, i, got[i])
		}
	}
}

func TestSplitInstruction(t *testing.T) {
	tests := []struct {
		instruction string
		keyword     string
		sep         string
	}{
		{"minor", "minor", ""},
		{".dev", "dev", "."},
		{"_rc", "rc", "_"},
		{"-post", "post", "-"},
		{"release", "release", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		keyword, sep := SplitInstruction(tt.instruction)
		if keyword != tt.keyword || sep != tt.sep {
			t.Errorf("SplitInstruction(%q): expected (%q, %q), got (%q, %q)",
				tt.instruction, tt.keyword, tt.sep, keyword, sep)
		}
	}
}

func TestClone(t *testing.T) {
	v, err := Parse("1.2.3")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	c := v.Clone()
	if err := c.Bump("major", ""); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := c.Render(); got != "2.0.0" {
		t.Errorf("Expected clone %q, got: %q", "2.0.0", got)
	}
	if got := v.Render(); got != "1.2.3" {
		t.Errorf("Expected original untouched, got: %q", got)
	}
}
