package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isnadlab/silsila/internal/bioindex"
	"github.com/isnadlab/silsila/internal/model"
	"github.com/isnadlab/silsila/internal/store"
)

func TestNamesMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"عروة", "عروه", true},                       // normalization
		{"عروة", "عروة بن الزبير", true},             // containment
		{"هشام بن عروة", "هشام بن عروه الاسدي", true}, // shared token
		{"مالك", "نافع", false},
		{"عبد الله", "عبد الرحمن", false}, // particle-only overlap
		{"", "", true},
		{"مالك", "", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NamesMatch(c.a, c.b), "%q vs %q", c.a, c.b)
	}
}

func TestCompareChains_TokenOverlapCountsAsMatched(t *testing.T) {
	primary := []string{"هشام بن عروة", "عروة", "عائشة"}
	secondary := []string{"هشام بن عروة", "عروة بن الزبير", "عائشة"}

	_, positions, matched := CompareChains(primary, secondary)
	assert.True(t, matched)
	assert.Empty(t, positions)
}

func TestCompareChains_LengthMismatch(t *testing.T) {
	primary := []string{"مالك", "نافع", "ابن عمر"}
	secondary := []string{"مالك", "نافع"}

	kind, positions, matched := CompareChains(primary, secondary)
	assert.False(t, matched)
	assert.Equal(t, model.MismatchLength, kind)
	assert.Nil(t, positions, "length mismatches carry no positional detail")
}

func TestCompareChains_PositionMismatch(t *testing.T) {
	primary := []string{"مالك", "نافع", "ابن عمر"}
	secondary := []string{"مالك", "الزهري", "ابن عمر"}

	kind, positions, matched := CompareChains(primary, secondary)
	assert.False(t, matched)
	assert.Equal(t, model.MismatchPosition, kind)
	assert.Equal(t, []int{1}, positions)
}

func testIndex(t *testing.T) *bioindex.Index {
	t.Helper()
	return bioindex.Build([]store.BioRow{
		{ScholarIndex: "10", Name: "Hisham ibn Urwah ( هشام بن عروة"},
		{ScholarIndex: "11", Name: "Urwah ( عروة بن الزبير"},
		{ScholarIndex: "12", Name: "Aisha ( عائشة بنت أبي بكر"},
		{ScholarIndex: "20", Name: "Malik ( مالك بن أنس"},
	})
}

func TestRun_EmitsMismatchWithReason(t *testing.T) {
	narrators := []model.Narrator{
		{ID: 0, CanonicalName: "هشام بن عروه"},
		{ID: 1, CanonicalName: "عروه"},
		{ID: 2, CanonicalName: "عائشه"},
	}
	chains := map[string][]int{"c0": {0, 1, 2}}
	records := []model.Record{
		{ID: "bukhari-1", Collection: "bukhari", Number: 1, ChainID: "c0"},
	}
	secondary := map[string]store.SecondaryRow{
		store.SecondaryKey("Sahih Bukhari", "1"): {
			Source: "Sahih Bukhari", Number: "1", ChainIndex: "10, 11",
		},
	}

	r := New(narrators, chains, testIndex(t))
	mismatches, stats := r.Run(records, secondary)

	require.Len(t, mismatches, 1)
	m := mismatches[0]
	assert.Equal(t, "bukhari-1", m.RecordID)
	assert.Equal(t, "c0", m.ChainID)
	assert.Equal(t, model.MismatchLength, m.Kind)
	assert.Equal(t, "count_diff:3vs2", m.Reason)
	assert.Equal(t, []string{"هشام بن عروة", "عروة بن الزبير"}, m.Secondary)
	assert.Equal(t, 1, stats.LengthMismatches)
	assert.Equal(t, 1, stats.Compared)
}

func TestRun_MatchedRecordNotQueued(t *testing.T) {
	narrators := []model.Narrator{
		{ID: 0, CanonicalName: "هشام بن عروه"},
		{ID: 1, CanonicalName: "عروه"},
		{ID: 2, CanonicalName: "عائشه"},
	}
	chains := map[string][]int{"c0": {0, 1, 2}}
	records := []model.Record{
		{ID: "bukhari-1", Collection: "bukhari", Number: 1, ChainID: "c0"},
	}
	secondary := map[string]store.SecondaryRow{
		store.SecondaryKey("Sahih Bukhari", "1"): {
			Source: "Sahih Bukhari", Number: "1", ChainIndex: "10,11,12",
		},
	}

	r := New(narrators, chains, testIndex(t))
	mismatches, stats := r.Run(records, secondary)

	assert.Empty(t, mismatches)
	assert.Equal(t, 1, stats.Matched)
}

func TestRun_SkipsRecordsWithoutSecondary(t *testing.T) {
	narrators := []model.Narrator{{ID: 0, CanonicalName: "مالك"}}
	chains := map[string][]int{"c0": {0}}
	records := []model.Record{
		{ID: "muslim-5", Collection: "muslim", Number: 5, ChainID: "c0"},
	}

	r := New(narrators, chains, testIndex(t))
	mismatches, stats := r.Run(records, nil)

	assert.Empty(t, mismatches)
	assert.Equal(t, 1, stats.MissingSecondary)
	assert.Equal(t, 0, stats.Compared)
}

func TestRun_UnknownScholarIndexKeepsPlaceholder(t *testing.T) {
	narrators := []model.Narrator{{ID: 0, CanonicalName: "مالك"}}
	chains := map[string][]int{"c0": {0}}
	records := []model.Record{
		{ID: "bukhari-2", Collection: "bukhari", Number: 2, ChainID: "c0"},
	}
	secondary := map[string]store.SecondaryRow{
		store.SecondaryKey("Sahih Bukhari", "2"): {
			Source: "Sahih Bukhari", Number: "2", ChainIndex: "9999",
		},
	}

	r := New(narrators, chains, testIndex(t))
	mismatches, _ := r.Run(records, secondary)

	require.Len(t, mismatches, 1)
	assert.Equal(t, []string{"9999"}, mismatches[0].Secondary)
	assert.Equal(t, model.MismatchPosition, mismatches[0].Kind)
}
