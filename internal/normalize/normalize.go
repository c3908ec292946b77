// Package normalize produces the canonical form of Arabic narrator names.
// Two raw spellings that normalize to the same key are treated as
// candidates for the same identity everywhere else in the pipeline.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// Tashkeel and Quranic annotation marks
	reDiacritics = regexp.MustCompile(`[\x{064B}-\x{065F}\x{0670}\x{06D6}-\x{06DC}\x{06DF}-\x{06E4}\x{06E7}\x{06E8}\x{06EA}-\x{06ED}]`)

	// Leading transmission particles: وعن / فعن / عن ("and from", "from").
	// Dictation chains stack them, so the strip repeats to the last one.
	reLeadParticle = regexp.MustCompile(`^(?:(?:وعن|فعن|عن)\s+)+`)

	// Leading conjunction و only when glued to a following letter,
	// e.g. "وعبد الله" -> "عبد الله". The class covers hamza forms so the
	// strip still fires before alif unification, and excludes و itself so
	// repeated application is a fixpoint.
	reLeadWaw = regexp.MustCompile(`^و([\x{0621}-\x{0647}\x{0649}-\x{064A}])`)

	reAlif        = regexp.MustCompile(`[إأآا]`)
	reTaaMarbuta  = regexp.MustCompile(`ة`)
	reAlifMaqsura = regexp.MustCompile(`ى`)

	// Kunyah variants ابي/ابا collapse to ابو, at start and mid-name
	// (genitive case inside names: "بن ابي" -> "بن ابو")
	reKunyahLead = regexp.MustCompile(`^(?:ابي|ابا)\s+`)
	reKunyahMid  = regexp.MustCompile(`\s(?:ابي|ابا)\s+`)

	reSpaces = regexp.MustCompile(`\s+`)
)

// Name returns the canonical key for a raw narrator name. It is pure,
// deterministic and idempotent: Name(Name(s)) == Name(s).
func Name(raw string) string {
	if raw == "" {
		return ""
	}

	text := reDiacritics.ReplaceAllString(raw, "")
	text = reLeadParticle.ReplaceAllString(text, "")
	text = reLeadWaw.ReplaceAllString(text, "$1")
	text = reAlif.ReplaceAllString(text, "ا")
	text = reTaaMarbuta.ReplaceAllString(text, "ه")
	text = reAlifMaqsura.ReplaceAllString(text, "ي")
	text = reKunyahLead.ReplaceAllString(text, "ابو ")
	// Adjacent genitive kunyahs share their separating space, so one
	// non-overlapping pass skips every second occurrence; repeat until
	// stable.
	for {
		next := reKunyahMid.ReplaceAllString(text, " ابو ")
		if next == text {
			break
		}
		text = next
	}
	text = reSpaces.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Tokens splits a normalized name into its tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
