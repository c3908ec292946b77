package cluster

import "testing"

func TestGroup_VariantsShareCluster(t *testing.T) {
	variants := []string{"أبو هريرة", "ابو هريره", "أَبُو هُرَيْرَةَ", "مالك"}

	groups := Group(variants)

	if len(groups) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(groups))
	}

	c, ok := groups["ابو هريره"]
	if !ok {
		t.Fatal("expected cluster for ابو هريره")
	}
	if len(c.VariantTexts) != 3 {
		t.Errorf("expected 3 variants, got %d", len(c.VariantTexts))
	}
	if c.IsKinship || c.IsNonName {
		t.Error("named narrator cluster wrongly flagged")
	}
}

func TestGroup_KinshipFlag(t *testing.T) {
	groups := Group([]string{"أَبِيهِ", "جده", "هشام بن عروة"})

	for _, key := range []string{"ابيه", "جده"} {
		c, ok := groups[key]
		if !ok {
			t.Fatalf("missing cluster for %s", key)
		}
		if !c.IsKinship {
			t.Errorf("cluster %s should be flagged kinship", key)
		}
	}

	if c := groups["هشام بن عروه"]; c == nil || c.IsKinship {
		t.Error("named narrator must not be flagged kinship")
	}
}

func TestGroup_EmptyKeySeparate(t *testing.T) {
	groups := Group([]string{"", "   ", "مالك"})

	empty, ok := groups[""]
	if !ok {
		t.Fatal("expected empty-key cluster")
	}
	if !empty.IsNonName {
		t.Error("empty-key cluster must be flagged non-name")
	}
	if len(empty.VariantTexts) != 2 {
		t.Errorf("expected 2 empty variants, got %d", len(empty.VariantTexts))
	}
	if named := groups["مالك"]; named == nil || named.IsNonName {
		t.Error("real identity must not share the empty cluster")
	}
}

func TestGroup_GenericTerms(t *testing.T) {
	groups := Group([]string{"رجل", "فلان"})
	for key, c := range groups {
		if !c.IsNonName {
			t.Errorf("generic term %s should be non-name", key)
		}
		if c.IsKinship {
			t.Errorf("generic term %s is not kinship", key)
		}
	}
}

func TestAccumulator_SequentialIDs(t *testing.T) {
	acc := NewAccumulator()

	a := acc.Add("مالك")
	b := acc.Add("نافع")
	c := acc.Add("مَالِك") // variant of the first

	if a != 0 || b != 1 || c != 0 {
		t.Errorf("unexpected IDs: %d %d %d", a, b, c)
	}
	if got := len(acc.Clusters()); got != 2 {
		t.Errorf("expected 2 clusters, got %d", got)
	}
}
