// Package cluster groups raw name occurrences into canonical-identity
// clusters by exact normalized key. No fuzzy unification happens here;
// that is the matcher's job against biographical data.
package cluster

import (
	"github.com/isnadlab/silsila/internal/kinship"
	"github.com/isnadlab/silsila/internal/normalize"
)

// Cluster is one canonical identity candidate: every raw spelling that
// normalized to the same key.
type Cluster struct {
	ID             int
	Key            string
	VariantIndices []int
	VariantTexts   []string
	IsKinship      bool
	IsNonName      bool
}

// Accumulator assigns stable sequential IDs to clusters in first-seen
// order while raw occurrences stream in.
type Accumulator struct {
	byKey map[string]*Cluster
	order []*Cluster
	count int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{byKey: make(map[string]*Cluster)}
}

// Add records one raw occurrence and returns the cluster ID for its
// normalized key. Empty and whitespace-only strings share the empty-key
// cluster, which is flagged non-name and never merged with an identity.
func (a *Accumulator) Add(raw string) int {
	key := normalize.Name(raw)

	c, ok := a.byKey[key]
	if !ok {
		c = &Cluster{ID: len(a.order), Key: key}
		if key == "" || kinship.IsGenericTerm(key) {
			c.IsNonName = true
		}
		if _, isKin := kinship.KindOf(key); isKin {
			c.IsKinship = true
		}
		a.byKey[key] = c
		a.order = append(a.order, c)
	}

	c.VariantIndices = append(c.VariantIndices, a.count)
	c.VariantTexts = append(c.VariantTexts, raw)
	a.count++

	return c.ID
}

// Lookup returns the cluster for a normalized key.
func (a *Accumulator) Lookup(key string) (*Cluster, bool) {
	c, ok := a.byKey[key]
	return c, ok
}

// Clusters returns all clusters in ID order.
func (a *Accumulator) Clusters() []*Cluster {
	return a.order
}

// Group clusters a full variant list in one pass and returns the result
// keyed by normalized form.
func Group(variants []string) map[string]*Cluster {
	acc := NewAccumulator()
	for _, v := range variants {
		acc.Add(v)
	}
	return acc.byKey
}
