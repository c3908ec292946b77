// Package chain converts per-record narrator sequences into deduplicated
// chain objects referencing canonical identity IDs. Identical resolved
// sequences always collapse to one chain (structural hash-consing).
package chain

import (
	"strconv"
	"strings"

	"github.com/isnadlab/silsila/internal/cluster"
	"github.com/isnadlab/silsila/internal/model"
)

// Builder accumulates records, assigning narrator IDs on first sight of
// a normalized key and chain IDs on first sight of an ID tuple.
type Builder struct {
	clusters *cluster.Accumulator

	chainByTuple map[string]string
	chains       map[string][]int
	records      map[string]string
	nextChain    int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		clusters:     cluster.NewAccumulator(),
		chainByTuple: make(map[string]string),
		chains:       make(map[string][]int),
		records:      make(map[string]string),
	}
}

// AddRecord resolves a record's raw name sequence and links the record
// to its chain. Records with an empty sequence are skipped; a record ID
// seen before keeps its first chain (duplicates ignored).
func (b *Builder) AddRecord(recordID string, rawNames []string) (string, bool) {
	if len(rawNames) == 0 {
		return "", false
	}
	if _, dup := b.records[recordID]; dup {
		return b.records[recordID], false
	}

	ids := make([]int, 0, len(rawNames))
	for _, name := range rawNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		ids = append(ids, b.clusters.Add(name))
	}
	if len(ids) == 0 {
		return "", false
	}

	chainID := b.intern(ids)
	b.records[recordID] = chainID
	return chainID, true
}

// intern returns the chain ID for an ID tuple, minting one on first
// sight. Equal tuples always yield the same ID.
func (b *Builder) intern(ids []int) string {
	key := tupleKey(ids)
	if chainID, ok := b.chainByTuple[key]; ok {
		return chainID
	}
	chainID := "c" + strconv.Itoa(b.nextChain)
	b.nextChain++
	b.chainByTuple[key] = chainID
	b.chains[chainID] = ids
	return chainID
}

func tupleKey(ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// Narrators materializes the canonical identity list in ID order.
// Unmatched biographies come later; here every entry starts as a bare
// identity flagged for research unless it is a kinship or non-name
// cluster.
func (b *Builder) Narrators() []model.Narrator {
	clusters := b.clusters.Clusters()
	narrators := make([]model.Narrator, len(clusters))
	for i, c := range clusters {
		n := model.Narrator{
			ID:            c.ID,
			CanonicalName: c.Key,
			VariantNames:  c.VariantTexts,
			IsKinship:     c.IsKinship,
			IsNonName:     c.IsNonName,
		}
		if !c.IsKinship && !c.IsNonName {
			n.NeedsResearch = true
		}
		narrators[i] = n
	}
	return narrators
}

// Chains returns the chain table. The slices are owned by the builder.
func (b *Builder) Chains() map[string][]int {
	return b.chains
}

// Records returns the record -> chain ID map.
func (b *Builder) Records() map[string]string {
	return b.records
}

// Stats summarizes a finished build.
type Stats struct {
	Narrators int
	Chains    int
	Records   int
}

// Stats reports current totals.
func (b *Builder) Stats() Stats {
	return Stats{
		Narrators: len(b.clusters.Clusters()),
		Chains:    len(b.chains),
		Records:   len(b.records),
	}
}
