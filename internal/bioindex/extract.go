package bioindex

import (
	"regexp"
	"strings"
)

var (
	// Honorific formulas trailing Arabic names in the source table
	reHonorifics = []*regexp.Regexp{
		regexp.MustCompile(`رضي الله عن[هاهم]*`),
		regexp.MustCompile(`صلى الله عليه وسلم`),
		regexp.MustCompile(`صل[ىي] الله عليه وسلم`),
	}

	reTrailingParen = regexp.MustCompile(`\s*\(\s*$`)

	// Generic fallback: first contiguous Arabic-script span
	reArabicSpan = regexp.MustCompile(`[\x{0600}-\x{06FF}][\x{0600}-\x{06FF}\s]+`)
)

// ExtractName splits the mixed-script name field of a biography row into
// its Arabic and Latin parts. The structured layout is
// "English Name ( Arabic Name ( honorific"; rows without the separator
// fall back to a raw Arabic script-range scan.
func ExtractName(field string) (arabic, latin string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", ""
	}

	if parts := strings.SplitN(field, " ( ", 3); len(parts) >= 2 {
		latin = strings.TrimSpace(parts[0])
		arabic = stripHonorifics(parts[1])
		return arabic, latin
	}

	if loc := reArabicSpan.FindStringIndex(field); loc != nil {
		arabic = stripHonorifics(field[loc[0]:loc[1]])
		latin = strings.TrimSpace(field[:loc[0]])
		return arabic, latin
	}

	return "", field
}

func stripHonorifics(s string) string {
	for _, re := range reHonorifics {
		s = re.ReplaceAllString(s, "")
	}
	s = reTrailingParen.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
