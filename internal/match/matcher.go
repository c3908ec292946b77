// Package match resolves an arbitrary name string to a candidate
// identity through priority-ordered strategies: manual alias, exact
// normalized key, containment, token overlap. The first strategy to
// succeed wins; a query that fails them all stays unmatched — callers
// never fabricate an identity.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/isnadlab/silsila/internal/normalize"
)

// Stop tokens carry no identity on their own: patronymic markers, kunyah
// markers, generic possessive particles.
var stopTokens = map[string]bool{
	"بن": true, "ابن": true, "ابي": true, "ابو": true,
	"ام": true, "عبد": true, "بنت": true, "ال": true,
}

// Strategy names recorded on results.
const (
	StrategyAlias       = "alias"
	StrategyExact       = "exact"
	StrategyContainment = "containment"
	StrategyTokens      = "tokens"
)

// Config tunes the acceptance rules.
type Config struct {
	// Threshold is the minimum containment confidence (general mode).
	Threshold float64

	// Strict switches containment to prefix-preferred mode with hard
	// shared-length floors, and disables the token-coverage acceptance
	// shortcut. The correction loop runs strict; enrichment does not.
	Strict bool

	// MinPrefixLen / MinAnyLen are the strict-mode shared-length floors
	// for prefix and match-anywhere containment.
	MinPrefixLen int
	MinAnyLen    int
}

// DefaultConfig matches the enrichment pass.
func DefaultConfig() Config {
	return Config{Threshold: 0.6, MinPrefixLen: 8, MinAnyLen: 12}
}

// Result is a successful resolution.
type Result struct {
	Candidate  int
	Confidence float64
	Strategy   string
}

// Matcher resolves names against a fixed candidate key set. Immutable
// after construction; safe to share.
type Matcher struct {
	cfg     Config
	keys    []string
	byKey   map[string]int
	byToken map[string][]int
	aliases map[string]int

	strategies []func(string) (Result, bool)
}

// New builds a matcher over candidate keys. keyOf maps a candidate index
// to its normalized key; duplicate keys keep the first candidate.
func New(cfg Config, keys []string, candidates []int) *Matcher {
	m := &Matcher{
		cfg:     cfg,
		byKey:   make(map[string]int),
		byToken: make(map[string][]int),
		aliases: make(map[string]int),
	}

	seenToken := make(map[string]map[int]bool)
	for i, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := m.byKey[key]; dup {
			continue
		}
		m.byKey[key] = candidates[i]
		m.keys = append(m.keys, key)

		// One vote per (token, candidate) pair, however many keys of the
		// candidate carry the token.
		for _, tok := range significantTokens(key) {
			if seenToken[tok] == nil {
				seenToken[tok] = make(map[int]bool)
			}
			if seenToken[tok][candidates[i]] {
				continue
			}
			seenToken[tok][candidates[i]] = true
			m.byToken[tok] = append(m.byToken[tok], candidates[i])
		}
	}

	// Priority order; manually verified mappings outrank every heuristic.
	m.strategies = []func(string) (Result, bool){
		m.matchAlias,
		m.matchExact,
		m.matchContainment,
		m.matchTokens,
	}

	return m
}

// SetAliases installs the manual override table. Keys may be raw or
// normalized; both forms are consulted.
func (m *Matcher) SetAliases(aliases map[string]int) {
	for name, id := range aliases {
		m.aliases[name] = id
		if norm := normalize.Name(name); norm != "" {
			if _, dup := m.aliases[norm]; !dup {
				m.aliases[norm] = id
			}
		}
	}
}

// Match resolves a name. The boolean is false when every strategy
// failed; the caller must treat the query as unmatched.
func (m *Matcher) Match(name string) (Result, bool) {
	query := normalize.Name(name)
	if query == "" {
		return Result{}, false
	}

	for _, strategy := range m.strategies {
		if res, ok := strategy(query); ok {
			return res, true
		}
	}
	return Result{}, false
}

func (m *Matcher) matchAlias(query string) (Result, bool) {
	if id, ok := m.aliases[query]; ok {
		return Result{Candidate: id, Confidence: 1.0, Strategy: StrategyAlias}, true
	}
	return Result{}, false
}

func (m *Matcher) matchExact(query string) (Result, bool) {
	if id, ok := m.byKey[query]; ok {
		return Result{Candidate: id, Confidence: 1.0, Strategy: StrategyExact}, true
	}
	return Result{}, false
}

// matchContainment accepts a query contained in an indexed key or vice
// versa. Confidence is shorter/longer × 0.95, capped below exact. The
// general mode takes the first candidate clearing the threshold; strict
// mode prefers the longest prefix-anchored overlap and enforces the
// shared-length floors.
func (m *Matcher) matchContainment(query string) (Result, bool) {
	if m.cfg.Strict {
		return m.matchContainmentStrict(query)
	}

	for _, key := range m.keys {
		if !strings.Contains(key, query) && !strings.Contains(query, key) {
			continue
		}
		conf := containmentConfidence(query, key)
		if conf >= m.cfg.Threshold {
			return Result{Candidate: m.byKey[key], Confidence: conf, Strategy: StrategyContainment}, true
		}
	}
	return Result{}, false
}

func (m *Matcher) matchContainmentStrict(query string) (Result, bool) {
	var (
		prefixKey, anyKey string
		prefixLen, anyLen int
	)

	// Prefix means the contained span starts at position 0 of the longer
	// string; those are preferred over match-anywhere.
	consider := func(key, shorter, longer string) {
		length := utf8.RuneCountInString(shorter)
		if strings.HasPrefix(longer, shorter) {
			if length > prefixLen {
				prefixKey, prefixLen = key, length
			}
		} else if length > anyLen {
			anyKey, anyLen = key, length
		}
	}

	for _, key := range m.keys {
		switch {
		case strings.Contains(query, key):
			consider(key, key, query)
		case strings.Contains(key, query):
			consider(key, query, key)
		}
	}

	if prefixKey != "" && prefixLen >= m.cfg.MinPrefixLen {
		return Result{
			Candidate:  m.byKey[prefixKey],
			Confidence: containmentConfidence(query, prefixKey),
			Strategy:   StrategyContainment,
		}, true
	}
	if anyKey != "" && anyLen >= m.cfg.MinAnyLen {
		return Result{
			Candidate:  m.byKey[anyKey],
			Confidence: containmentConfidence(query, anyKey),
			Strategy:   StrategyContainment,
		}, true
	}
	return Result{}, false
}

// matchTokens scores candidates by shared significant tokens. The best
// candidate is accepted with >=2 shared tokens, or — general mode only —
// when the overlap covers at least half the query's significant tokens.
func (m *Matcher) matchTokens(query string) (Result, bool) {
	qTokens := significantTokens(query)
	if len(qTokens) == 0 {
		return Result{}, false
	}

	counts := make(map[int]int)
	for _, tok := range qTokens {
		for _, id := range m.byToken[tok] {
			counts[id]++
		}
	}

	best, bestCount := -1, 0
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best, bestCount = id, count
		}
	}
	if best < 0 {
		return Result{}, false
	}

	accept := bestCount >= 2
	if !accept && !m.cfg.Strict {
		accept = float64(bestCount) >= float64(len(qTokens))*0.5
	}
	if !accept {
		return Result{}, false
	}

	conf := float64(bestCount) / float64(len(qTokens))
	if conf > 0.9 {
		conf = 0.9
	}
	return Result{Candidate: best, Confidence: conf, Strategy: StrategyTokens}, true
}

func containmentConfidence(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb) * 0.95
}

func significantTokens(key string) []string {
	var out []string
	for _, tok := range normalize.Tokens(key) {
		if stopTokens[tok] || utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}
