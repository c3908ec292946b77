package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		term string
		kind Kind
	}{
		{"ابيه", KindFather},
		{"جده", KindGrandfather},
		// عم/خال are uncles (paternal and maternal); the ة forms are aunts.
		{"عمه", KindUncle},
		{"خاله", KindUncle},
		{"عمته", KindAunt},
		{"خالته", KindAunt},
		{"اخيه", KindBrother},
		{"امه", KindMother},
	}

	for _, tt := range tests {
		kind, ok := KindOf(tt.term)
		require.True(t, ok, "term %q not recognized", tt.term)
		assert.Equal(t, tt.kind, kind, "term %q", tt.term)
	}

	if _, ok := KindOf("مالك"); ok {
		t.Error("plain name must not be a kinship term")
	}
}

func TestDetect_EmbeddedName(t *testing.T) {
	kind, embedded, ok := Detect("أبيه بريدة")
	require.True(t, ok)
	assert.Equal(t, KindFather, kind)
	assert.Equal(t, "بريده", embedded)
}
