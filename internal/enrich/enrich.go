// Package enrich attaches biographical attributes to canonical
// narrators by matching their names against the biography index.
package enrich

import (
	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/match"
	"github.com/isnadlab/silsila/internal/model"
)

const unmatchedSampleSize = 50

// Report is the enrichment summary artifact.
type Report struct {
	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Filtered  int     `json:"filtered"`
	Unmatched int     `json:"unmatched"`
	MatchRate float64 `json:"matchRate"`

	// UnmatchedSample is a bounded sample of names that found no
	// biography, for manual alias curation.
	UnmatchedSample []string `json:"unmatchedSample,omitempty"`
}

// NewMatcher builds the general-mode matcher over the biography index.
// Candidates are positions into the index key list.
func NewMatcher(index *bioindex.Index, cfg match.Config) *match.Matcher {
	keys := index.Keys()
	candidates := make([]int, len(keys))
	for i := range keys {
		candidates[i] = i
	}
	return match.New(cfg, keys, candidates)
}

// Run matches every canonical narrator in place. Kinship references and
// non-name placeholders are filtered, never matched: a kinship entry
// must not become a named person here.
func Run(narrators []model.Narrator, index *bioindex.Index, cfg match.Config) Report {
	m := NewMatcher(index, cfg)
	keys := index.Keys()

	report := Report{Total: len(narrators)}
	for i := range narrators {
		n := &narrators[i]
		if n.IsKinship || n.IsNonName {
			report.Filtered++
			continue
		}

		res, ok := m.Match(n.CanonicalName)
		if !ok {
			report.Unmatched++
			n.NeedsResearch = true
			if len(report.UnmatchedSample) < unmatchedSampleSize {
				report.UnmatchedSample = append(report.UnmatchedSample, n.CanonicalName)
			}
			continue
		}

		entry, found := index.Lookup(keys[res.Candidate])
		if !found {
			report.Unmatched++
			n.NeedsResearch = true
			continue
		}

		apply(n, entry, res)
		report.Matched++
	}

	if considered := report.Total - report.Filtered; considered > 0 {
		report.MatchRate = float64(report.Matched) / float64(considered)
	}
	return report
}

// apply copies biography attributes onto the narrator. Enrichment is
// additive and last-writer-wins per field.
func apply(n *model.Narrator, e *bioindex.Entry, res match.Result) {
	n.NameAr = e.NameAr
	n.NameEn = e.NameEn
	n.Grade = e.Grade
	n.Parents = e.Parents
	n.Teachers = e.Teachers
	n.Students = e.Students
	n.BirthPlace = e.BirthPlace
	n.BirthDate = e.BirthDate
	n.DeathPlace = e.DeathPlace
	n.DeathDate = e.DeathDate

	n.Matched = true
	n.NeedsResearch = false
	n.MatchScore = res.Confidence
	n.MatchSource = res.Strategy
}
