package segment

import "github.com/clipperhouse/textrope/textropeerr"

// maxRegions is the spec'd upper bound on mem_id values; ids live in
// [0, 255], i.e. a single byte.
const maxRegions = 256

// Registry is an append-only table of memory regions, keyed by a small
// integer id (mem_id) that TextChunk leaves reference instead of holding
// their own byte slices. Entries may be replaced in place; the buffer
// does so only for regions it owns (the styled-text scratch region in
// buffer.SetStyledText and the edit arena in buffer.appendEdit), since
// nothing enforces that no other TextChunk still points at the old bytes.
type Registry struct {
	regions [][]byte
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends data as a new region and returns its mem_id. It
// returns textropeerr.OutOfMemory if the registry is already full.
func (r *Registry) Register(data []byte) (uint8, error) {
	if len(r.regions) >= maxRegions {
		return 0, textropeerr.New(textropeerr.OutOfMemory, "segment: memory region registry is full")
	}
	id := uint8(len(r.regions))
	r.regions = append(r.regions, data)
	return id, nil
}

// Replace overwrites the region at id in place. It is a silent no-op if
// id is not yet registered, per the memory registry's failure semantics.
func (r *Registry) Replace(id uint8, data []byte) {
	if int(id) >= len(r.regions) {
		return
	}
	r.regions[id] = data
}

// Bytes returns the byte range [byteStart, byteEnd) of the region
// identified by id. It returns textropeerr.InvalidMemID if id is
// unregistered, or textropeerr.InvalidDimensions if the range is
// malformed or out of bounds.
func (r *Registry) Bytes(id uint8, byteStart, byteEnd int) ([]byte, error) {
	if int(id) >= len(r.regions) {
		return nil, textropeerr.New(textropeerr.InvalidMemID, "segment: mem_id not registered")
	}
	region := r.regions[id]
	if byteStart < 0 || byteEnd < byteStart || byteEnd > len(region) {
		return nil, textropeerr.New(textropeerr.InvalidDimensions, "segment: byte range out of bounds for region")
	}
	return region[byteStart:byteEnd], nil
}

// Reset drops every registered region and recycles their ids.
func (r *Registry) Reset() {
	r.regions = r.regions[:0]
}

// Len returns the number of registered regions.
func (r *Registry) Len() int {
	return len(r.regions)
}
