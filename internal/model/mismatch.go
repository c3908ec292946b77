package model

import "fmt"

// MismatchKind classifies why two chain encodings disagree
type MismatchKind string

const (
	// MismatchLength means the two sequences differ in length; no
	// positional detail is computed for these.
	MismatchLength MismatchKind = "length"

	// MismatchPosition means equal length with one or more positions
	// whose names do not refer to the same identity.
	MismatchPosition MismatchKind = "position"
)

// Mismatch is one disagreement between the primary chain and the
// secondary-source chain for the same record. It carries both full name
// lists so the correction loop can work without re-reading the sources.
type Mismatch struct {
	RecordID   string `json:"recordId"`
	ChainID    string `json:"chainId"`
	Collection string `json:"collection"`
	Number     string `json:"number"`

	Primary   []string `json:"primaryChain"`
	Secondary []string `json:"secondaryChain"`

	Kind      MismatchKind `json:"kind"`
	Positions []int        `json:"positions,omitempty"`
	Reason    string       `json:"reason"`

	// Partial holds the best attempt of a correction pass that could not
	// resolve every name. A partially resolved chain is never applied;
	// the mismatch is re-queued with this attached.
	Partial *PartialFix `json:"partial,omitempty"`
}

// PartialFix records an incomplete correction attempt.
type PartialFix struct {
	ResolvedIDs []int    `json:"resolvedIds"`
	Missing     []string `json:"missing"`
}

// LengthReason renders the legacy count_diff reason string.
func LengthReason(primary, secondary int) string {
	return fmt.Sprintf("count_diff:%dvs%d", primary, secondary)
}

// PositionReason renders the legacy name_diff reason string.
func PositionReason(positions []int) string {
	return fmt.Sprintf("name_diff:positions:%v", positions)
}
