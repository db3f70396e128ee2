package pipeline

import "regexp"

// mentionPattern matches "@" followed by one or more capitalized
// words (Latin letters including accented forms, hyphens allowed).
// Matching stops at the first word not starting with an uppercase
// letter, which keeps conjunctions ("et", "ont") and e-mail addresses
// out of the match.
var mentionPattern = regexp.MustCompile(`@([A-ZÀ-Ÿ][A-ZÀ-Ÿa-zà-ÿ\-]+(?:[ \t]+[A-ZÀ-Ÿ][A-ZÀ-Ÿa-zà-ÿ\-]+)*)`)

// ExtractMentions returns the name phrases referenced with an "@"
// sigil in the text, in order of appearance, duplicates preserved.
// This is pure string matching producing human-readable names, not
// resolved identities.
func ExtractMentions(text string) []string {
	if text == "" {
		return nil
	}

	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
