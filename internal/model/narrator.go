package model

// Narrator is a resolved canonical identity. One entry groups every raw
// spelling that normalizes to the same key. Biographical fields are filled
// by the enrichment pass; kinship fields by the kinship resolver. Entries
// are never deleted, only enriched (last writer wins per field).
type Narrator struct {
	ID            int      `json:"id"`
	CanonicalName string   `json:"canonicalName"`
	VariantNames  []string `json:"variantNames,omitempty"`

	// IsKinship marks a relative reference (his father, his uncle, ...)
	// rather than a named individual. IsNonName marks generic placeholders
	// (a man, a sheikh, so-and-so).
	IsKinship bool `json:"isKinship,omitempty"`
	IsNonName bool `json:"isNonName,omitempty"`

	// Biographical attributes from the authoritative table
	NameAr     string `json:"nameAr,omitempty"`
	NameEn     string `json:"nameEn,omitempty"`
	Grade      string `json:"grade,omitempty"`
	Parents    string `json:"parents,omitempty"`
	Teachers   string `json:"teachers,omitempty"`
	Students   string `json:"students,omitempty"`
	BirthPlace string `json:"birthPlace,omitempty"`
	BirthDate  string `json:"birthDate,omitempty"`
	DeathPlace string `json:"deathPlace,omitempty"`
	DeathDate  string `json:"deathDate,omitempty"`

	// MatchScore and MatchSource record how the biography was found
	// (csv, manual, kinship). Matched means a biography exists;
	// NeedsResearch means the matcher exhausted every strategy.
	MatchScore    float64 `json:"matchScore,omitempty"`
	MatchSource   string  `json:"source,omitempty"`
	Matched       bool    `json:"matched"`
	NeedsResearch bool    `json:"needsResearch,omitempty"`

	// Kinship resolution results. A kinship reference is resolved
	// per-occurrence; ResolvedName is the consensus across chains.
	KinshipKind     string           `json:"kinshipType,omitempty"`
	ResolvedName    string           `json:"resolvedName,omitempty"`
	ResolutionCount int              `json:"resolutionCount,omitempty"`
	SampleContexts  []KinshipContext `json:"sampleContexts,omitempty"`
}

// KinshipContext is one audited resolution of a kinship reference:
// the chain it occurred in, the narrator at the preceding position, and
// the concrete name the reference resolved to (empty if unresolved).
type KinshipContext struct {
	ChainID    string `json:"chain"`
	Preceding  string `json:"prevNarrator"`
	ResolvedTo string `json:"resolvedTo,omitempty"`
}
