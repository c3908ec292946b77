// Package correct drives the mismatch-fixing loop: resolve the
// secondary source's names through the strict matcher first, fall back
// to the oracle, and rewrite a chain only when every position resolved.
package correct

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/isnadlab/silsila/internal/cache"
	"github.com/isnadlab/silsila/internal/match"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/oracle"
	"github.com/isnadlab/silsila/internal/store"
	"github.com/isnadlab/silsila/internal/worker"
)

// reInnerName pulls a parenthesized alternative out of a name, e.g.
// "Urwah (عروة بن الزبير)". Some secondary rows carry the fuller form
// only inside the parentheses.
var reInnerName = regexp.MustCompile(`\(([^)]+)\)`)

// Config tunes the correction pass pacing and persistence.
type Config struct {
	RequestDelay time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	SaveEvery    int
	CacheTTL     time.Duration
	Verbose      bool
}

// Report summarizes one correction run.
type Report struct {
	RunID    string    `json:"runId"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	Total              int `json:"total"`
	Skipped            int `json:"skipped"`
	FixedFromSecondary int `json:"fixedFromSecondary"`
	FixedFromOracle    int `json:"fixedFromOracle"`
	Unfixable          int `json:"unfixable"`
}

// Corrector holds the collaborators of a correction pass. The chain
// table is mutated in place; everything else is read-only.
type Corrector struct {
	matcher    *match.Matcher
	chains     map[string][]int
	provider   oracle.Provider
	cache      cache.Cache
	limiter    *worker.Limiter
	checkpoint *store.Checkpoint
	cfg        Config
}

// New builds a corrector. provider and cache may be nil: without a
// provider the oracle tier is skipped, without a cache every oracle call
// goes to the wire.
func New(matcher *match.Matcher, chains map[string][]int, provider oracle.Provider,
	responses cache.Cache, limiter *worker.Limiter, checkpoint *store.Checkpoint, cfg Config) *Corrector {
	if cfg.SaveEvery <= 0 {
		cfg.SaveEvery = 50
	}
	return &Corrector{
		matcher:    matcher,
		chains:     chains,
		provider:   provider,
		cache:      responses,
		limiter:    limiter,
		checkpoint: checkpoint,
		cfg:        cfg,
	}
}

// Run processes the mismatch queue and returns the run report plus the
// mismatches that stayed unfixable, each carrying its best partial
// attempt for the next pass.
func (c *Corrector) Run(ctx context.Context, mismatches []model.Mismatch) (*Report, []model.Mismatch, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Total:   len(mismatches),
	}

	var unfixable []model.Mismatch
	for _, m := range mismatches {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if c.checkpoint.Contains(m.RecordID) {
			report.Skipped++
			continue
		}

		fixed, source, partial := c.fixOne(ctx, m)
		if fixed {
			if source == "oracle" {
				report.FixedFromOracle++
			} else {
				report.FixedFromSecondary++
			}
		} else {
			m.Partial = partial
			unfixable = append(unfixable, m)
			report.Unfixable++
		}

		c.checkpoint.Add(m.RecordID)
		if c.checkpoint.Dirty() >= c.cfg.SaveEvery {
			if err := c.checkpoint.Flush(); err != nil {
				return nil, nil, fmt.Errorf("flush checkpoint: %w", err)
			}
		}
	}

	if err := c.checkpoint.Flush(); err != nil {
		return nil, nil, fmt.Errorf("flush checkpoint: %w", err)
	}

	report.Finished = time.Now().UTC()
	return report, unfixable, nil
}

// fixOne tries the secondary names, then the oracle. The chain is only
// rewritten when every name resolved; a partial resolution is returned
// for re-queueing instead.
func (c *Corrector) fixOne(ctx context.Context, m model.Mismatch) (bool, string, *model.PartialFix) {
	ids, missing := c.resolveNames(m.Secondary)
	if len(missing) == 0 && len(ids) > 0 {
		c.chains[m.ChainID] = ids
		return true, "secondary", nil
	}
	bestPartial := &model.PartialFix{ResolvedIDs: ids, Missing: missing}

	if c.provider == nil {
		return false, "", bestPartial
	}

	resp, err := c.suggest(ctx, m)
	if err != nil {
		if c.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "oracle failed for %s: %v\n", m.RecordID, err)
		}
		return false, "", bestPartial
	}
	if len(resp.Chain) == 0 || resp.Confidence == "low" {
		return false, "", bestPartial
	}

	names := make([]string, len(resp.Chain))
	for i, n := range resp.Chain {
		names[i] = n.NameAr
	}
	ids, missing = c.resolveNames(names)
	if len(missing) == 0 && len(ids) > 0 {
		c.chains[m.ChainID] = ids
		return true, "oracle", nil
	}
	if len(missing) < len(bestPartial.Missing) || len(bestPartial.ResolvedIDs) == 0 {
		bestPartial = &model.PartialFix{ResolvedIDs: ids, Missing: missing}
	}
	return false, "", bestPartial
}

// resolveNames maps every name through the matcher, trying a
// parenthesized inner form when the full string fails. Returns the
// resolved IDs in order plus the names that stayed unresolved.
func (c *Corrector) resolveNames(names []string) ([]int, []string) {
	var (
		ids     []int
		missing []string
	)
	for _, name := range names {
		if res, ok := c.matcher.Match(name); ok {
			ids = append(ids, res.Candidate)
			continue
		}
		if inner := innerName(name); inner != "" {
			if res, ok := c.matcher.Match(inner); ok {
				ids = append(ids, res.Candidate)
				continue
			}
		}
		missing = append(missing, name)
	}
	return ids, missing
}

// suggest consults the response cache before going to the wire. Wire
// calls are rate limited, delayed, and retried with a fixed backoff.
func (c *Corrector) suggest(ctx context.Context, m model.Mismatch) (*oracle.SuggestResponse, error) {
	key := cache.ResponseKey(m.RecordID)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			var resp oracle.SuggestResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	req := oracle.SuggestRequest{
		Collection: m.Collection,
		Number:     m.Number,
		Primary:    m.Primary,
		Secondary:  m.Secondary,
	}

	var resp *oracle.SuggestResponse
	call := func() error {
		if c.limiter != nil {
			if err := c.limiter.WaitWithDelay(ctx, c.provider.Name(), c.cfg.RequestDelay); err != nil {
				return err
			}
		}
		var err error
		resp, err = c.provider.SuggestChain(ctx, req)
		return err
	}
	if err := worker.Retry(ctx, c.cfg.MaxRetries, c.cfg.RetryDelay, call); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = c.cache.Set(key, data, c.cfg.CacheTTL)
		}
	}
	return resp, nil
}

func innerName(name string) string {
	m := reInnerName.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}
