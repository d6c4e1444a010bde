package rope_test

import (
	"testing"

	"github.com/clipperhouse/textrope/rope"
)

// FuzzInsertDelete drives a rope and a plain slice through the same random
// insert/delete script and checks they stay in lockstep — the reference
// model the fuzz-driving CLI also exercises scanners/ropes against.
func FuzzInsertDelete(f *testing.F) {
	if testing.Short() {
		f.Skip("skipping fuzz test in short mode")
	}

	f.Add([]byte{1, 5, 2, 0, 3, 10, 1, 2})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, ops []byte) {
		r := rope.New[intLeaf]()
		var ref []intLeaf

		for i := 0; i+1 < len(ops); i += 2 {
			op := ops[i] % 3
			arg := int(ops[i+1])

			switch op {
			case 0: // insert one at arg % (len+1)
				if len(ref) == 0 {
					arg = 0
				} else {
					arg = arg % (len(ref) + 1)
				}
				v := intLeaf(arg)
				r.Insert(arg, v)
				ref = append(ref, 0)
				copy(ref[arg+1:], ref[arg:])
				ref[arg] = v
			case 1: // delete one at arg % len, if non-empty
				if len(ref) == 0 {
					continue
				}
				arg = arg % len(ref)
				r.Delete(arg)
				ref = append(ref[:arg], ref[arg+1:]...)
			case 2: // rebalance, a no-op on content
				r.Rebalance()
			}

			if r.Len() != len(ref) {
				t.Fatalf("length mismatch after op %d: rope=%d ref=%d", op, r.Len(), len(ref))
			}
			for i, want := range ref {
				got, ok := r.Get(i)
				if !ok || got != want {
					t.Fatalf("Get(%d) = %v,%v; want %v", i, got, ok, want)
				}
			}
		}
	})
}
