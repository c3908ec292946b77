package chain

import (
	"fmt"
	"strings"
)

// ParseNameList parses the dataset's bracketed narrator list, a quoted
// literal like ['هشام بن عروة', 'أبيه', "عائشة"]. Single and double
// quotes and backslash escapes are accepted. Empty and whitespace-only
// elements are dropped. A malformed list is a parse failure: the caller
// skips the record rather than fabricating a chain.
func ParseNameList(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("empty list literal")
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a list literal: %.20q", raw)
	}
	s = s[1 : len(s)-1]

	var (
		names   []string
		current strings.Builder
		quote   rune
		escaped bool
		inStr   bool
	)

	flush := func() {
		name := strings.TrimSpace(current.String())
		current.Reset()
		if name != "" {
			names = append(names, name)
		}
	}

	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case inStr && r == '\\':
			escaped = true
		case inStr && r == quote:
			inStr = false
		case inStr:
			current.WriteRune(r)
		case r == '\'' || r == '"':
			inStr = true
			quote = r
		case r == ',':
			flush()
		case r == ' ' || r == '\t' || r == '\n':
			// separators between elements
		default:
			return nil, fmt.Errorf("unexpected character %q in list literal", r)
		}
	}

	if inStr || escaped {
		return nil, fmt.Errorf("unterminated string in list literal")
	}
	flush()

	return names, nil
}
