package segment_test

import (
	"testing"

	"github.com/clipperhouse/textrope/segment"
)

func TestTextChunkMerge(t *testing.T) {
	a := segment.TextChunk(0, 0, 5, 5, 0)
	b := segment.TextChunk(0, 5, 10, 5, 0)
	if !a.CanMerge(b) {
		t.Fatal("expected adjacent same-region chunks to be mergeable")
	}
	merged := a.Merge(b)
	if merged.ByteStart != 0 || merged.ByteEnd != 10 || merged.Width != 10 {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
}

func TestTextChunkCannotMergeDifferentRegions(t *testing.T) {
	a := segment.TextChunk(0, 0, 5, 5, 0)
	b := segment.TextChunk(1, 5, 10, 5, 0)
	if a.CanMerge(b) {
		t.Fatal("expected chunks from different regions to not merge")
	}
}

func TestTextChunkCannotMergeNonAdjacent(t *testing.T) {
	a := segment.TextChunk(0, 0, 5, 5, 0)
	b := segment.TextChunk(0, 6, 10, 4, 0)
	if a.CanMerge(b) {
		t.Fatal("expected non-adjacent byte ranges to not merge")
	}
}

func TestRewriteEndsSynthesizesLineStart(t *testing.T) {
	chunk := segment.TextChunk(0, 0, 5, 5, 0)
	edit := chunk.RewriteEnds(chunk, chunk)
	if len(edit.ReplaceFirst) != 2 || edit.ReplaceFirst[0].Kind != segment.KindLineStart {
		t.Fatalf("expected a synthesized LineStart, got %+v", edit)
	}
}

func TestRewriteEndsNoopWhenAlreadyLineStart(t *testing.T) {
	ls := segment.NewLineStart()
	edit := ls.RewriteEnds(ls, ls)
	if len(edit.ReplaceFirst) != 0 {
		t.Fatalf("expected no-op, got %+v", edit)
	}
}

func TestRegistryRegisterAndBytes(t *testing.T) {
	reg := segment.NewRegistry()
	id, err := reg.Register([]byte("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := reg.Bytes(id, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestRegistryReplaceUnregisteredIsNoop(t *testing.T) {
	reg := segment.NewRegistry()
	reg.Replace(42, []byte("ignored"))
	if reg.Len() != 0 {
		t.Fatalf("expected no-op replace on unregistered id, got len %d", reg.Len())
	}
}

func TestRegistryReset(t *testing.T) {
	reg := segment.NewRegistry()
	reg.Register([]byte("a"))
	reg.Register([]byte("b"))
	reg.Reset()
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry after reset, got %d", reg.Len())
	}
}
