// Command textropefuzz drives the scanners and rope against a plain-slice
// reference model for a configurable number of random insert/delete/scan
// operations, reporting the first mismatch it finds. It is the CLI
// counterpart to the packages' own go test -fuzz targets, useful for a
// long unattended soak run rather than a bounded `go test` invocation.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/clipperhouse/textrope/rope"
	"github.com/clipperhouse/textrope/simdscan"
)

type intLeaf int

func (l intLeaf) Measure() rope.Metrics { return rope.Metrics{Count: 1, Weight: 1, Bytes: 1} }
func (l intLeaf) Weight() int           { return 1 }

func main() {
	iterations := flag.Int("n", 100000, "number of insert/delete operations to drive")
	seed := flag.Int64("seed", 1, "random seed")
	verbose := flag.Bool("v", false, "log every operation, not just mismatches")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := fuzzRope(rng, *iterations, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "rope fuzz failed:", err)
		os.Exit(1)
	}
	if err := fuzzScanners(rng, *iterations, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "scanner fuzz failed:", err)
		os.Exit(1)
	}
	fmt.Printf("ok: %d rope ops, %d scanner samples, seed %d\n", *iterations, *iterations, *seed)
}

// fuzzRope drives a rope and a plain []intLeaf through the same random
// insert/delete script, failing on the first divergence.
func fuzzRope(rng *rand.Rand, iterations int, verbose bool) error {
	r := rope.New[intLeaf]()
	var ref []intLeaf

	for i := 0; i < iterations; i++ {
		if len(ref) == 0 || rng.Intn(2) == 0 {
			at := 0
			if len(ref) > 0 {
				at = rng.Intn(len(ref) + 1)
			}
			v := intLeaf(rng.Intn(1000))
			r.Insert(at, v)
			ref = append(ref, 0)
			copy(ref[at+1:], ref[at:])
			ref[at] = v
			if verbose {
				fmt.Printf("insert(%d, %d)\n", at, v)
			}
		} else {
			at := rng.Intn(len(ref))
			r.Delete(at)
			ref = append(ref[:at], ref[at+1:]...)
			if verbose {
				fmt.Printf("delete(%d)\n", at)
			}
		}

		if r.Len() != len(ref) {
			return fmt.Errorf("iteration %d: length mismatch: rope=%d ref=%d", i, r.Len(), len(ref))
		}
		for j, want := range ref {
			got, ok := r.Get(j)
			if !ok || got != want {
				return fmt.Errorf("iteration %d: Get(%d) = %v,%v; want %v", i, j, got, ok, want)
			}
		}
	}
	return nil
}

// fuzzScanners drives simdscan's scanners against random byte strings,
// checking in-bounds offsets and strictly increasing breaks; the
// cluster-boundary check of the package's fuzz test is not repeated here.
func fuzzScanners(rng *rand.Rand, iterations int, verbose bool) error {
	alphabet := []byte("ab \t\n\r.,;!?")
	for i := 0; i < iterations; i++ {
		n := rng.Intn(40)
		data := make([]byte, n)
		for j := range data {
			data[j] = alphabet[rng.Intn(len(alphabet))]
		}
		if verbose {
			fmt.Printf("scan sample: %q\n", data)
		}

		breaks := simdscan.FindLineBreaks(data, nil)
		last := -1
		for _, b := range breaks {
			if b.Pos <= last || b.Pos >= len(data) {
				return fmt.Errorf("iteration %d: bad line break %d for %q", i, b.Pos, data)
			}
			last = b.Pos
		}

		width := rng.Intn(10)
		res := simdscan.FindWrapPosByWidth(data, width, 4)
		if res.ByteOffset < 0 || res.ByteOffset > len(data) {
			return fmt.Errorf("iteration %d: wrap offset %d out of bounds for %q", i, res.ByteOffset, data)
		}
	}
	return nil
}
