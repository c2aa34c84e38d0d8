package render

import "strings"

// Replacement substitutes every literal occurrence of Needle.
type Replacement struct {
	Needle      string `toml:"needle"`
	Replacement string `toml:"replacement"`
}

// Replacements apply in order; a later entry sees the output of earlier ones.
type Replacements []Replacement

func (rs Replacements) Apply(text string) string {
	for _, r := range rs {
		if r.Needle == "" {
			continue
		}
		text = strings.ReplaceAll(text, r.Needle, r.Replacement)
	}
	return text
}
