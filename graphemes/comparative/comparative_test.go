package comparative

import (
	"reflect"
	"testing"

	"github.com/clipperhouse/textrope/graphemes"
	"github.com/rivo/uniseg"
)

var sample = "Hello, 世界. Nice dog! 👍🐶 🇺🇸🇨🇦 नमस्ते café"

// TestAgreesWithUniseg compares this package's grapheme boundaries against
// rivo/uniseg's, the most widely used alternative Go implementation. Full
// agreement isn't guaranteed for every exotic codepoint, but the two
// should agree closely for ordinary multi-lingual and emoji text.
func TestAgreesWithUniseg(t *testing.T) {
	var ours []string
	g := graphemes.FromString(sample)
	for g.Next() {
		ours = append(ours, g.Value())
	}

	var theirs []string
	state := -1
	text := sample
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		theirs = append(theirs, cluster)
	}

	if !reflect.DeepEqual(ours, theirs) {
		t.Logf("ours:   %q", ours)
		t.Logf("theirs: %q", theirs)
		t.Error("grapheme boundaries disagree with rivo/uniseg for the sample text")
	}
}

func BenchmarkGraphemesMixed(b *testing.B) {
	n := int64(len(sample))

	b.Run("clipperhouse/textrope", func(b *testing.B) {
		b.SetBytes(n)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			count := 0
			g := graphemes.FromString(sample)
			for g.Next() {
				count++
			}
		}
	})

	b.Run("rivo/uniseg", func(b *testing.B) {
		b.SetBytes(n)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			count := 0
			state := -1
			text := sample
			for len(text) > 0 {
				_, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
				count++
			}
		}
	})
}
