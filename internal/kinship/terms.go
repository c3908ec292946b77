// Package kinship detects and resolves relative references (his father,
// his grandfather, ...) that stand in for named narrators inside chains.
package kinship

import (
	"strings"

	"github.com/isnadlab/silsila/internal/normalize"
)

// Kind is the relation a kinship reference denotes.
type Kind string

const (
	KindFather      Kind = "father"
	KindGrandfather Kind = "grandfather"
	KindUncle       Kind = "uncle"
	KindAunt        Kind = "aunt"
	KindBrother     Kind = "brother"
	KindSister      Kind = "sister"
	KindMother      Kind = "mother"
	KindChild       Kind = "child"
)

// Closed set of relative-reference terms, keyed by normalized form.
// Direct and possessive variants both appear.
var kinshipTerms = map[string]Kind{
	"ابيه": KindFather, "اباه": KindFather, "ابوه": KindFather, "ابيها": KindFather,
	"جده": KindGrandfather, "جدته": KindGrandfather, "جدها": KindGrandfather,
	"عمه": KindUncle, "خاله": KindUncle,
	"عمته": KindAunt, "خالته": KindAunt,
	"اخيه": KindBrother, "اخوه": KindBrother,
	"اخته": KindSister,
	"امه":  KindMother, "امها": KindMother,
	"ابنه": KindChild, "ابنته": KindChild, "ابنها": KindChild,
}

// Generic placeholder terms that are not names and not kinship
// references: a man, a woman, a sheikh, so-and-so, ...
var genericTerms = map[string]bool{
	"رجل": true, "رجلا": true, "امراه": true,
	"شيخ": true, "شيخه": true, "شيخا": true,
	"مخبر": true, "مخبره": true,
	"فلان": true, "فلانه": true,
	"ام ولد": true, "ام ولده": true,
	"بعض اصحابه": true, "رجل من اصحابه": true,
}

// KindOf reports the relation kind when the normalized name exactly
// equals one of the closed kinship terms.
func KindOf(normalized string) (Kind, bool) {
	k, ok := kinshipTerms[normalized]
	return k, ok
}

// Detect matches a raw reference against the kinship terms by prefix and
// returns the relation kind plus any embedded name that follows the term
// ("his father, Buraidah" carries the name directly).
func Detect(raw string) (Kind, string, bool) {
	norm := normalize.Name(raw)
	fields := strings.Fields(norm)
	if len(fields) == 0 {
		return "", "", false
	}
	kind, ok := kinshipTerms[fields[0]]
	if !ok {
		return "", "", false
	}
	embedded := strings.TrimLeft(strings.Join(fields[1:], " "), "،, ")
	return kind, embedded, true
}

// IsGenericTerm reports whether the normalized name is a generic
// non-name placeholder.
func IsGenericTerm(normalized string) bool {
	return genericTerms[normalized]
}
