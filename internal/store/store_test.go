package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isnadlab/silsila/internal/model"
)

func TestStore_ArtifactRoundTrip(t *testing.T) {
	st, err := New(t.TempDir(), true)
	require.NoError(t, err)

	narrators := []model.Narrator{
		{ID: 0, CanonicalName: "مالك", Matched: true, Grade: "ثقة"},
		{ID: 1, CanonicalName: "ابيه", IsKinship: true},
	}
	chains := map[string][]int{"c0": {0, 1}}
	records := map[string]string{"bukhari-1": "c0"}

	require.NoError(t, st.SaveNarrators(narrators))
	require.NoError(t, st.SaveChains(chains))
	require.NoError(t, st.SaveRecords(records))

	gotNarrators, err := st.LoadNarrators()
	require.NoError(t, err)
	assert.Equal(t, narrators, gotNarrators)

	gotChains, err := st.LoadChains()
	require.NoError(t, err)
	assert.Equal(t, chains, gotChains)

	gotRecords, err := st.LoadRecords()
	require.NoError(t, err)
	assert.Equal(t, records, gotRecords)
}

func TestCheckpoint_Resume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Len())

	cp.Add("bukhari-1")
	cp.Add("bukhari-2")
	cp.Add("bukhari-1") // re-adding is a no-op
	assert.Equal(t, 2, cp.Dirty())
	require.NoError(t, cp.Flush())
	assert.Equal(t, 0, cp.Dirty())

	resumed, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.True(t, resumed.Contains("bukhari-1"))
	assert.True(t, resumed.Contains("bukhari-2"))
	assert.False(t, resumed.Contains("bukhari-3"))
	assert.Equal(t, 2, resumed.Len())
}

func TestLoadAliases_MissingFileIsEmpty(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)
	assert.Empty(t, aliases)
}

func TestLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"عكرمة": 42}`), 0o644))

	aliases, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, 42, aliases["عكرمة"])
}

func TestLoadRawRecords_FiltersAndParses(t *testing.T) {
	csv := "Book,Num_hadith,Sanad,Matn\n" +
		"صحيح البخاري,1.0,\"['مالك', 'نافع']\",نص\n" +
		"كتاب غير معروف,2,\"['فلان']\",نص\n" +
		"صحيح مسلم,bad,\"['فلان']\",نص\n"
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	rows, err := LoadRawRecords(path)
	require.NoError(t, err)

	require.Len(t, rows, 1, "unknown collections and bad numbers are skipped")
	assert.Equal(t, "bukhari", rows[0].Collection)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "['مالك', 'نافع']", rows[0].Chain)
}

func TestLoadSecondaryChains_KeyedBySourceNumber(t *testing.T) {
	csv := "source,hadith_no,chain_indx\n" +
		"Sahih Bukhari,1,\"10, 11\"\n" +
		",2,99\n"
	path := filepath.Join(t.TempDir(), "secondary.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	rows, err := LoadSecondaryChains(path)
	require.NoError(t, err)

	require.Len(t, rows, 1, "rows without a source are skipped")
	row := rows[SecondaryKey("Sahih Bukhari", "1")]
	assert.Equal(t, []string{"10", "11"}, SplitChainIndex(row.ChainIndex))
}

func TestParseRecordID(t *testing.T) {
	collection, number, ok := ParseRecordID("bukhari-17")
	require.True(t, ok)
	assert.Equal(t, "bukhari", collection)
	assert.Equal(t, 17, number)

	for _, bad := range []string{"", "bukhari", "bukhari-", "-17", "bukhari-x"} {
		if _, _, ok := ParseRecordID(bad); ok {
			t.Errorf("expected parse failure for %q", bad)
		}
	}
}
