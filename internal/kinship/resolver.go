package kinship

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/normalize"
)

const maxContexts = 10

// rePatronymic captures what follows the first son-of marker in a
// normalized name. The capture keeps up to three tokens so compound
// father names survive.
var rePatronymic = regexp.MustCompile(`(?:^|\s)(?:بن|ابن)\s+(\S+(?:\s+\S+)?(?:\s+\S+)?)`)

// Compound name heads that require the following token to stay attached
// (kunyahs, servant-of constructions, definite articles).
var compoundHeads = map[string]bool{
	"ابي": true, "ابو": true, "ابا": true, "ام": true,
	"عبد": true, "عبيد": true,
}

// Resolution aggregates every occurrence of one kinship identity across
// all chains that contain it.
type Resolution struct {
	NarratorID int                    `json:"id"`
	Original   string                 `json:"nameOriginal"`
	Kind       Kind                   `json:"kinshipType"`
	ByChain    map[string]string      `json:"resolvedInChains"`
	Contexts   []model.KinshipContext `json:"contexts,omitempty"`

	// Consensus is the modal resolved name across occurrences,
	// recomputed only after every occurrence has been attempted.
	Consensus  string `json:"resolvedName,omitempty"`
	Resolved   int    `json:"resolved"`
	Unresolved int    `json:"unresolved"`
}

// Stats summarizes one resolver pass.
type Stats struct {
	TotalReferences int
	Resolved        int
	Unresolved      int
	ByKind          map[Kind]int
}

// Resolver resolves kinship references against chain-position context.
// names is the canonical narrator list indexed by ID; knownFathers maps
// normalized narrator names to fathers from biographical parent data.
type Resolver struct {
	names        []string
	knownFathers map[string]string
}

// NewResolver creates a resolver over the canonical name list.
func NewResolver(names []string, knownFathers map[string]string) *Resolver {
	if knownFathers == nil {
		knownFathers = map[string]string{}
	}
	return &Resolver{names: names, knownFathers: knownFathers}
}

// ResolveAll walks every chain and resolves each kinship occurrence from
// the narrator at the immediately preceding position in that same chain.
// Narrator IDs beyond the known identity count are logged and excluded.
func (r *Resolver) ResolveAll(chains map[string][]int) (map[int]*Resolution, Stats) {
	resolutions := make(map[int]*Resolution)
	stats := Stats{ByKind: make(map[Kind]int)}

	for chainID, ids := range chains {
		for pos, id := range ids {
			if id < 0 || id >= len(r.names) {
				fmt.Fprintf(os.Stderr, "warning: chain %s references unknown narrator %d\n", chainID, id)
				continue
			}
			raw := r.names[id]
			kind, embedded, ok := Detect(raw)
			if !ok {
				continue
			}

			stats.TotalReferences++
			stats.ByKind[kind]++

			res := resolutions[id]
			if res == nil {
				res = &Resolution{
					NarratorID: id,
					Original:   raw,
					Kind:       kind,
					ByChain:    make(map[string]string),
				}
				resolutions[id] = res
			}

			var preceding string
			if pos > 0 {
				prev := ids[pos-1]
				if prev >= 0 && prev < len(r.names) {
					preceding = r.names[prev]
				}
			}

			resolved := r.resolveOne(kind, embedded, preceding)
			if resolved != "" {
				res.ByChain[chainID] = resolved
				res.Resolved++
				stats.Resolved++
			} else {
				res.Unresolved++
				stats.Unresolved++
			}

			if len(res.Contexts) < maxContexts {
				res.Contexts = append(res.Contexts, model.KinshipContext{
					ChainID:    chainID,
					Preceding:  preceding,
					ResolvedTo: resolved,
				})
			}
		}
	}

	// All occurrences attempted; now fix the consensus per identity.
	for _, res := range resolutions {
		res.Consensus = modalResolution(res.ByChain)
	}

	return resolutions, stats
}

// resolveOne applies the strategy tiers for a single occurrence:
// embedded name, patronymic of the preceding narrator, known-fathers
// lookup. An empty return means unresolved.
func (r *Resolver) resolveOne(kind Kind, embedded, preceding string) string {
	if utf8.RuneCountInString(embedded) > 2 {
		return embedded
	}
	if preceding == "" {
		return ""
	}

	prevNorm := normalize.Name(preceding)

	switch kind {
	case KindFather:
		if father := FatherFromPatronymic(prevNorm); father != "" {
			return father
		}
		if father, ok := r.knownFathers[prevNorm]; ok {
			return father
		}
	case KindGrandfather:
		// One more patronymic level: the father's father.
		if tail := patronymicTail(prevNorm); tail != "" {
			if grandfather := FatherFromPatronymic(tail); grandfather != "" {
				return grandfather
			}
		}
	}

	return ""
}

// FatherFromPatronymic extracts Y from a normalized "X son-of Y" name.
// Compound father names (kunyahs, servant-of, definite article) keep
// their trailing tokens; simple names reduce to the first token.
func FatherFromPatronymic(normalized string) string {
	m := rePatronymic.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	fatherPart := strings.TrimSpace(m[1])
	tokens := strings.Fields(fatherPart)
	if len(tokens) == 0 {
		return ""
	}
	if compoundHeads[tokens[0]] || strings.HasPrefix(tokens[0], "ال") {
		return fatherPart
	}
	return tokens[0]
}

// patronymicTail returns everything after the first son-of marker.
func patronymicTail(normalized string) string {
	m := rePatronymic.FindStringSubmatchIndex(normalized)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(normalized[m[2]:])
}

// modalResolution picks the most frequent resolved name by normalized
// form, returning one of the original spellings. Ties break toward the
// lexicographically smaller normalized key so reruns agree.
func modalResolution(byChain map[string]string) string {
	if len(byChain) == 0 {
		return ""
	}

	// Walk chains in sorted order so the representative spelling of a
	// normalized key does not depend on map iteration.
	chainIDs := make([]string, 0, len(byChain))
	for chainID := range byChain {
		chainIDs = append(chainIDs, chainID)
	}
	sort.Strings(chainIDs)

	counts := make(map[string]int)
	firstForm := make(map[string]string)
	for _, chainID := range chainIDs {
		name := byChain[chainID]
		key := normalize.Name(name)
		counts[key]++
		if _, ok := firstForm[key]; !ok {
			firstForm[key] = name
		}
	}

	var bestKey string
	bestCount := -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < bestKey) {
			bestKey, bestCount = key, count
		}
	}
	return firstForm[bestKey]
}

// Enrich merges resolutions back into the canonical identity list.
// A kinship reference never becomes a matched named person; resolution
// stays per-occurrence with a consensus attached.
func Enrich(narrators []model.Narrator, resolutions map[int]*Resolution) {
	for id, res := range resolutions {
		if id < 0 || id >= len(narrators) {
			continue
		}
		n := &narrators[id]
		n.IsKinship = true
		n.KinshipKind = string(res.Kind)
		n.ResolvedName = res.Consensus
		n.ResolutionCount = len(res.ByChain)
		if len(res.Contexts) > 5 {
			n.SampleContexts = res.Contexts[:5]
		} else {
			n.SampleContexts = res.Contexts
		}
		n.MatchSource = "kinship"
		n.Matched = false
		n.NeedsResearch = false
	}
}
