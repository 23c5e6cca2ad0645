package main

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/jnikula/vers/pkg/version"
)

type bumpOption struct {
	Keyword string
	Result  string
}

// bumpOptions enumerates the keywords that apply to v, each with the version
// it would produce. Keywords the current version rejects (a downgrade, or a
// missing numeric segment) are left out.
func bumpOptions(v *version.Version) []bumpOption {
	var options []bumpOption
	for _, keyword := range version.Keywords() {
		next := v.Clone()
		if err := next.Bump(keyword, ""); err != nil {
			continue
		}
		options = append(options, bumpOption{Keyword: keyword, Result: next.Render()})
	}
	return options
}

func promptKeyword(v *version.Version) (string, error) {
	options := bumpOptions(v)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   fmt.Sprintf("%s {{ .Keyword | cyan | underline }} ({{ .Result | green }})", promptui.Styler(promptui.FGGreen)("⇨")),
		Inactive: "  {{ .Keyword | cyan }} ({{ .Result | green }})",
		Selected: fmt.Sprintf("%s bumping {{ .Keyword }} to {{ .Result | green }}", promptui.IconGood),
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf(
			"Current version is %s, shall we bump",
			v.Render(),
		),
		Items:     options,
		Templates: templates,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return options[i].Keyword, nil
}
