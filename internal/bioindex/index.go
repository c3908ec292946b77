// Package bioindex builds a multi-key lookup structure over the
// authoritative narrator biography table. Each entry is reachable under
// several derived keys so truncated and partial references still land on
// the right biography.
package bioindex

import (
	"strings"
	"unicode/utf8"

	"github.com/isnadlab/silsila/internal/normalize"
	"github.com/isnadlab/silsila/internal/store"
)

// Entry is one biography row with its name split out of the mixed-script
// source field.
type Entry struct {
	ScholarIndex string
	NameAr       string
	NameEn       string
	Grade        string
	Parents      string
	Teachers     string
	Students     string
	BirthPlace   string
	BirthDate    string
	DeathPlace   string
	DeathDate    string
}

// Index supports O(1) average lookup of entries under derived keys.
// Immutable after Build; safe to share by reference.
type Index struct {
	byKey     map[string]*Entry
	byScholar map[string]*Entry
	keys      []string
}

// Build indexes every biography row. Keys never overwrite: the first
// entry to claim a key keeps it, so common short keys are not hijacked
// by later, less specific rows.
func Build(rows []store.BioRow) *Index {
	ix := &Index{
		byKey:     make(map[string]*Entry),
		byScholar: make(map[string]*Entry),
	}

	for _, row := range rows {
		arabic, latin := ExtractName(row.Name)
		if arabic == "" {
			continue
		}

		key := normalize.Name(arabic)
		if key == "" {
			continue
		}

		e := &Entry{
			ScholarIndex: row.ScholarIndex,
			NameAr:       arabic,
			NameEn:       latin,
			Grade:        row.Grade,
			Parents:      row.Parents,
			Teachers:     row.Teachers,
			Students:     row.Students,
			BirthPlace:   row.BirthPlace,
			BirthDate:    row.BirthDate,
			DeathPlace:   row.DeathPlace,
			DeathDate:    row.DeathDate,
		}

		if e.ScholarIndex != "" {
			if _, ok := ix.byScholar[e.ScholarIndex]; !ok {
				ix.byScholar[e.ScholarIndex] = e
			}
		}

		ix.add(key, e)
		ix.addDerivedKeys(key, e)
	}

	return ix
}

// addDerivedKeys registers the partial-reference keys for one entry.
func (ix *Index) addDerivedKeys(key string, e *Entry) {
	parts := normalize.Tokens(key)
	if len(parts) == 0 {
		return
	}

	// First token alone, for single-word-famous identities
	if utf8.RuneCountInString(parts[0]) >= 3 {
		ix.add(parts[0], e)
	}

	// First two and first three tokens, for truncated references
	if len(parts) >= 2 {
		ix.add(strings.Join(parts[:2], " "), e)
	}
	if len(parts) >= 3 {
		ix.add(strings.Join(parts[:3], " "), e)
	}

	// Kunyah form when the name begins with a kunyah marker
	if parts[0] == "ابو" || parts[0] == "ام" {
		if len(parts) >= 2 {
			ix.add(strings.Join(parts[:2], " "), e)
		} else {
			ix.add(parts[0], e)
		}
	}

	// Patronymic marker: index "marker + next token" and the next token
	// alone, first marker only
	for i, p := range parts {
		if (p == "بن" || p == "بنت") && i+1 < len(parts) {
			ix.add(p+" "+parts[i+1], e)
			if utf8.RuneCountInString(parts[i+1]) >= 3 {
				ix.add(parts[i+1], e)
			}
			break
		}
	}

	// "ابن شهاب" is also reachable as "شهاب"
	if len(parts) >= 2 && (parts[0] == "ابن" || parts[0] == "بن") {
		ix.add(strings.Join(parts[1:], " "), e)
	}

	// Nisbah strip: drop a trailing tribal/locative adjective
	if len(parts) >= 3 {
		last := parts[len(parts)-1]
		if strings.HasSuffix(last, "ي") && utf8.RuneCountInString(last) > 3 {
			ix.add(strings.Join(parts[:len(parts)-1], " "), e)
		}
	}
}

func (ix *Index) add(key string, e *Entry) {
	if _, exists := ix.byKey[key]; exists {
		return
	}
	ix.byKey[key] = e
	ix.keys = append(ix.keys, key)
}

// Lookup returns the entry registered under a normalized key.
func (ix *Index) Lookup(key string) (*Entry, bool) {
	e, ok := ix.byKey[key]
	return e, ok
}

// ByScholar returns the entry for a scholar index from the source table.
func (ix *Index) ByScholar(scholarIndex string) (*Entry, bool) {
	e, ok := ix.byScholar[scholarIndex]
	return e, ok
}

// Keys returns every registered key in insertion order. The slice is
// shared; callers must not mutate it.
func (ix *Index) Keys() []string {
	return ix.keys
}

// Len reports the number of registered keys.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// KnownFathers derives a normalized-name -> father map from the parents
// field of every entry, for kinship resolution.
func (ix *Index) KnownFathers() map[string]string {
	fathers := make(map[string]string)
	for _, e := range ix.byScholar {
		if e.Parents == "" {
			continue
		}
		key := normalize.Name(e.NameAr)
		if key == "" {
			continue
		}
		if _, ok := fathers[key]; !ok {
			fathers[key] = strings.TrimSpace(e.Parents)
		}
	}
	return fathers
}
