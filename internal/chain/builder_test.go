package chain

import (
	"reflect"
	"testing"
)

func TestBuilder_DedupesIdenticalSequences(t *testing.T) {
	b := NewBuilder()

	id1, ok := b.AddRecord("bukhari-1", []string{"مالك", "نافع", "ابن عمر"})
	if !ok {
		t.Fatal("expected record accepted")
	}
	id2, ok := b.AddRecord("muslim-7", []string{"مالك", "نافع", "ابن عمر"})
	if !ok {
		t.Fatal("expected record accepted")
	}

	if id1 != id2 {
		t.Errorf("identical sequences got distinct chains: %s vs %s", id1, id2)
	}
	if len(b.Chains()) != 1 {
		t.Errorf("expected 1 chain, got %d", len(b.Chains()))
	}
}

func TestBuilder_DistinctSequencesGetDistinctChains(t *testing.T) {
	b := NewBuilder()

	id1, _ := b.AddRecord("r1", []string{"مالك", "نافع"})
	id2, _ := b.AddRecord("r2", []string{"مالك", "الزهري"})

	if id1 == id2 {
		t.Error("different sequences must not share a chain")
	}
}

func TestBuilder_VariantsResolveToSameNarrator(t *testing.T) {
	b := NewBuilder()

	id1, _ := b.AddRecord("r1", []string{"أبو هريرة"})
	id2, _ := b.AddRecord("r2", []string{"ابو هريره"})

	if id1 != id2 {
		t.Error("spelling variants must resolve to the same chain")
	}

	narrators := b.Narrators()
	if len(narrators) != 1 {
		t.Fatalf("expected 1 narrator, got %d", len(narrators))
	}
	if len(narrators[0].VariantNames) != 2 {
		t.Errorf("expected 2 recorded variants, got %d", len(narrators[0].VariantNames))
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	records := [][]string{
		{"هشام بن عروة", "أبيه", "عائشة"},
		{"مالك", "نافع", "ابن عمر"},
		{"هشام بن عروة", "أبيه", "عائشة"},
	}

	build := func() (map[string][]int, map[string]string) {
		b := NewBuilder()
		for i, names := range records {
			b.AddRecord("r"+string(rune('a'+i)), names)
		}
		return b.Chains(), b.Records()
	}

	chains1, records1 := build()
	chains2, records2 := build()

	if !reflect.DeepEqual(chains1, chains2) {
		t.Error("chain table not deterministic across identical builds")
	}
	if !reflect.DeepEqual(records1, records2) {
		t.Error("record links not deterministic across identical builds")
	}
}

func TestBuilder_SkipsEmptySequences(t *testing.T) {
	b := NewBuilder()

	if _, ok := b.AddRecord("r1", nil); ok {
		t.Error("nil sequence must be skipped")
	}
	if _, ok := b.AddRecord("r2", []string{"", "  "}); ok {
		t.Error("all-blank sequence must be skipped")
	}
	if len(b.Records()) != 0 {
		t.Errorf("no records expected, got %d", len(b.Records()))
	}
}

func TestBuilder_FirstRecordWins(t *testing.T) {
	b := NewBuilder()

	id1, _ := b.AddRecord("r1", []string{"مالك"})
	id2, fresh := b.AddRecord("r1", []string{"نافع"})

	if fresh {
		t.Error("duplicate record ID must not be re-linked")
	}
	if id1 != id2 {
		t.Error("duplicate record must keep its first chain")
	}
}

func TestBuilder_KinshipFlagged(t *testing.T) {
	b := NewBuilder()
	b.AddRecord("r1", []string{"هشام بن عروة", "أبيه", "عائشة"})

	var found bool
	for _, n := range b.Narrators() {
		if n.CanonicalName == "ابيه" {
			found = true
			if !n.IsKinship {
				t.Error("kinship reference not flagged")
			}
			if n.NeedsResearch {
				t.Error("kinship reference must not be flagged for research")
			}
		}
	}
	if !found {
		t.Fatal("kinship narrator missing")
	}
}

func TestParseNameList(t *testing.T) {
	names, err := ParseNameList(`['هشام بن عروة', 'أبيه', "عائشة"]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []string{"هشام بن عروة", "أبيه", "عائشة"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestParseNameList_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not a list", "['unterminated]", "[xyz]"} {
		if _, err := ParseNameList(raw); err == nil {
			t.Errorf("expected parse failure for %q", raw)
		}
	}
}

func TestParseNameList_DropsEmptyElements(t *testing.T) {
	names, err := ParseNameList(`['مالك', '', '  ']`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(names) != 1 || names[0] != "مالك" {
		t.Errorf("unexpected names: %v", names)
	}
}
