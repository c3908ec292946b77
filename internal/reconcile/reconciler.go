// Package reconcile compares chains built from the primary dataset
// against the independent secondary encoding of the same records and
// emits a mismatch queue for the correction loop.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/normalize"
	"github.com/isnadlab/silsila/internal/store"
)

// Particles removed before the shared-token test. Deliberately smaller
// than the matcher's stop set: the reconciler favors recall because the
// two sources truncate and transliterate differently.
var particleTokens = map[string]bool{
	"بن": true, "ابن": true, "ابي": true,
	"ام": true, "عبد": true, "بنت": true,
}

// Stats summarizes one reconciliation pass.
type Stats struct {
	Records            int
	Compared           int
	Matched            int
	LengthMismatches   int
	PositionMismatches int
	MissingSecondary   int
	EmptySecondary     int
}

// Reconciler holds the immutable inputs of a pass.
type Reconciler struct {
	narrators []model.Narrator
	chains    map[string][]int
	index     *bioindex.Index
}

// New builds a reconciler over the canonical narrator list, the chain
// table, and the biography index used to decode secondary scholar
// indices into names.
func New(narrators []model.Narrator, chains map[string][]int, index *bioindex.Index) *Reconciler {
	return &Reconciler{narrators: narrators, chains: chains, index: index}
}

// Run compares every record that has a secondary row and returns the
// mismatch queue. Records without a secondary counterpart are counted
// and skipped, never flagged.
func (r *Reconciler) Run(records []model.Record, secondary map[string]store.SecondaryRow) ([]model.Mismatch, Stats) {
	var mismatches []model.Mismatch
	stats := Stats{Records: len(records)}

	for _, rec := range records {
		srcName, ok := store.SecondarySourceName(rec.Collection)
		if !ok {
			stats.MissingSecondary++
			continue
		}
		number := strconv.Itoa(rec.Number)
		row, ok := secondary[store.SecondaryKey(srcName, number)]
		if !ok {
			stats.MissingSecondary++
			continue
		}

		secondaryNames := r.secondaryNames(row.ChainIndex)
		if len(secondaryNames) == 0 {
			stats.EmptySecondary++
			continue
		}

		primaryNames := r.primaryNames(r.chains[rec.ChainID])
		stats.Compared++

		kind, positions, matched := CompareChains(primaryNames, secondaryNames)
		if matched {
			stats.Matched++
			continue
		}

		m := model.Mismatch{
			RecordID:   rec.ID,
			ChainID:    rec.ChainID,
			Collection: rec.Collection,
			Number:     number,
			Primary:    primaryNames,
			Secondary:  secondaryNames,
			Kind:       kind,
			Positions:  positions,
		}
		switch kind {
		case model.MismatchLength:
			stats.LengthMismatches++
			m.Reason = model.LengthReason(len(primaryNames), len(secondaryNames))
		case model.MismatchPosition:
			stats.PositionMismatches++
			m.Reason = model.PositionReason(positions)
		}
		mismatches = append(mismatches, m)
	}

	return mismatches, stats
}

// CompareChains classifies the disagreement between two name sequences.
// Differing lengths short-circuit to a length mismatch with no
// positional detail; equal lengths are compared position by position.
func CompareChains(primary, secondary []string) (model.MismatchKind, []int, bool) {
	if len(primary) != len(secondary) {
		return model.MismatchLength, nil, false
	}

	var positions []int
	for i := range primary {
		if !NamesMatch(primary[i], secondary[i]) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return "", nil, true
	}
	return model.MismatchPosition, positions, false
}

// NamesMatch reports whether two names plausibly refer to the same
// identity: equal normalized forms, containment either way, or at least
// one shared token after dropping patronymic and kunyah particles.
func NamesMatch(a, b string) bool {
	na, nb := normalize.Name(a), normalize.Name(b)
	if na == "" || nb == "" {
		return na == nb
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	tb := make(map[string]bool)
	for _, tok := range normalize.Tokens(nb) {
		if !particleTokens[tok] {
			tb[tok] = true
		}
	}
	for _, tok := range normalize.Tokens(na) {
		if !particleTokens[tok] && tb[tok] {
			return true
		}
	}
	return false
}

// primaryNames renders a chain's narrator IDs as display names,
// preferring the enriched biography name over the normalized canonical
// form.
func (r *Reconciler) primaryNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(r.narrators) {
			continue
		}
		n := r.narrators[id]
		if n.NameAr != "" {
			names = append(names, n.NameAr)
		} else {
			names = append(names, n.CanonicalName)
		}
	}
	return names
}

// secondaryNames decodes a comma-separated scholar-index list through
// the biography index. Unknown indices keep their raw index string so
// length comparison still reflects the encoded chain.
func (r *Reconciler) secondaryNames(chainIndex string) []string {
	indices := store.SplitChainIndex(chainIndex)
	names := make([]string, 0, len(indices))
	for _, idx := range indices {
		if e, ok := r.index.ByScholar(idx); ok && e.NameAr != "" {
			names = append(names, e.NameAr)
		} else {
			names = append(names, idx)
		}
	}
	return names
}
