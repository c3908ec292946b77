package correct

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isnadlab/silsila/internal/cache"
	"github.com/isnadlab/silsila/internal/match"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/oracle"
	"github.com/isnadlab/silsila/internal/store"
)

type fakeProvider struct {
	calls int
	resp  *oracle.SuggestResponse
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(context.Context) bool { return true }

func (f *fakeProvider) SuggestChain(context.Context, oracle.SuggestRequest) (*oracle.SuggestResponse, error) {
	f.calls++
	return f.resp, f.err
}

func strictMatcher() *match.Matcher {
	keys := []string{"هشام بن عروه", "عروه بن الزبير", "عائشه بنت ابو بكر"}
	cfg := match.Config{Threshold: 0.6, Strict: true, MinPrefixLen: 8, MinAnyLen: 12}
	return match.New(cfg, keys, []int{0, 1, 2})
}

func newCheckpoint(t *testing.T) *store.Checkpoint {
	t.Helper()
	cp, err := store.LoadCheckpoint(filepath.Join(t.TempDir(), "checkpoint.json"))
	require.NoError(t, err)
	return cp
}

func sampleMismatch() model.Mismatch {
	return model.Mismatch{
		RecordID:   "bukhari-1",
		ChainID:    "c0",
		Collection: "bukhari",
		Number:     "1",
		Primary:    []string{"هشام", "عروه"},
		Secondary:  []string{"هشام بن عروة", "عروة بن الزبير", "عائشة بنت أبي بكر"},
		Kind:       model.MismatchLength,
		Reason:     model.LengthReason(2, 3),
	}
}

func TestRun_FixesFromSecondary(t *testing.T) {
	chains := map[string][]int{"c0": {0, 1}}
	c := New(strictMatcher(), chains, nil, nil, nil, newCheckpoint(t), Config{})

	report, unfixable, err := c.Run(context.Background(), []model.Mismatch{sampleMismatch()})
	require.NoError(t, err)

	assert.Equal(t, 1, report.FixedFromSecondary)
	assert.Empty(t, unfixable)
	assert.Equal(t, []int{0, 1, 2}, chains["c0"])
	assert.NotEmpty(t, report.RunID)
}

func TestRun_SkipsCheckpointedRecords(t *testing.T) {
	chains := map[string][]int{"c0": {0, 1}}
	cp := newCheckpoint(t)
	cp.Add("bukhari-1")

	c := New(strictMatcher(), chains, nil, nil, nil, cp, Config{})
	report, unfixable, err := c.Run(context.Background(), []model.Mismatch{sampleMismatch()})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, unfixable)
	assert.Equal(t, []int{0, 1}, chains["c0"], "skipped record must not rewrite its chain")
}

func TestRun_PartialNeverApplied(t *testing.T) {
	chains := map[string][]int{"c0": {0, 1}}
	m := sampleMismatch()
	m.Secondary = []string{"هشام بن عروة", "اسم مجهول تماما"}

	c := New(strictMatcher(), chains, nil, nil, nil, newCheckpoint(t), Config{})
	report, unfixable, err := c.Run(context.Background(), []model.Mismatch{m})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Unfixable)
	assert.Equal(t, []int{0, 1}, chains["c0"], "partial resolution must not touch the chain")

	require.Len(t, unfixable, 1)
	require.NotNil(t, unfixable[0].Partial)
	assert.Equal(t, []int{0}, unfixable[0].Partial.ResolvedIDs)
	assert.Equal(t, []string{"اسم مجهول تماما"}, unfixable[0].Partial.Missing)
}

func TestRun_OracleFallback(t *testing.T) {
	chains := map[string][]int{"c0": {0, 1}}
	m := sampleMismatch()
	m.Secondary = []string{"غير معروف اطلاقا"}

	provider := &fakeProvider{resp: &oracle.SuggestResponse{
		Chain: []oracle.SuggestedName{
			{NameAr: "هشام بن عروة"},
			{NameAr: "عروة بن الزبير"},
		},
		Confidence: "high",
	}}

	c := New(strictMatcher(), chains, provider, nil, nil, newCheckpoint(t), Config{MaxRetries: 1})
	report, unfixable, err := c.Run(context.Background(), []model.Mismatch{m})
	require.NoError(t, err)

	assert.Equal(t, 1, report.FixedFromOracle)
	assert.Empty(t, unfixable)
	assert.Equal(t, []int{0, 1}, chains["c0"])
	assert.Equal(t, 1, provider.calls)
}

func TestRun_LowConfidenceRejected(t *testing.T) {
	chains := map[string][]int{"c0": {0, 1}}
	m := sampleMismatch()
	m.Secondary = []string{"غير معروف اطلاقا"}

	provider := &fakeProvider{resp: &oracle.SuggestResponse{
		Chain:      []oracle.SuggestedName{{NameAr: "هشام بن عروة"}},
		Confidence: "low",
	}}

	c := New(strictMatcher(), chains, provider, nil, nil, newCheckpoint(t), Config{MaxRetries: 1})
	report, unfixable, err := c.Run(context.Background(), []model.Mismatch{m})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Unfixable)
	require.Len(t, unfixable, 1)
	assert.Equal(t, []int{0, 1}, chains["c0"])
}

func TestRun_OracleResponseCached(t *testing.T) {
	m := sampleMismatch()
	m.Secondary = []string{"غير معروف اطلاقا"}

	provider := &fakeProvider{resp: &oracle.SuggestResponse{
		Chain:      []oracle.SuggestedName{{NameAr: "هشام بن عروة"}},
		Confidence: "high",
	}}
	responses := cache.NewMemoryCache(time.Hour, time.Hour)

	run := func() {
		chains := map[string][]int{"c0": {0, 1}}
		c := New(strictMatcher(), chains, provider, responses, nil, newCheckpoint(t), Config{MaxRetries: 1})
		_, _, err := c.Run(context.Background(), []model.Mismatch{m})
		require.NoError(t, err)
	}

	run()
	run()
	assert.Equal(t, 1, provider.calls, "second run must hit the response cache")
}

func TestResolveNames_ParenthesizedFallback(t *testing.T) {
	c := New(strictMatcher(), nil, nil, nil, nil, nil, Config{})

	ids, missing := c.resolveNames([]string{"Hisham (هشام بن عروة)"})
	assert.Empty(t, missing)
	assert.Equal(t, []int{0}, ids)
}
