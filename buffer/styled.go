package buffer

// StyledChunk is one run of pre-colored text as given to SetStyledText:
// a byte slice and the style name it should render with.
type StyledChunk struct {
	Text  []byte
	Style string
}

// StyleRegistry maps style names to small stable integer ids, id 0
// reserved for "no style / default" so it lines up with StyleSpan's
// zero value.
type StyleRegistry struct {
	ids   map[string]int
	names []string
}

// NewStyleRegistry creates an empty StyleRegistry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{ids: make(map[string]int)}
}

// Register returns the id for name, assigning a new one the first time
// it's seen. The empty name always maps to 0.
func (s *StyleRegistry) Register(name string) int {
	if name == "" {
		return 0
	}
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := len(s.names) + 1
	s.ids[name] = id
	s.names = append(s.names, name)
	return id
}

// Name returns the style name registered under id, if any.
func (s *StyleRegistry) Name(id int) (string, bool) {
	if id <= 0 || id > len(s.names) {
		return "", false
	}
	return s.names[id-1], true
}

// growScratch ensures the scratch region can hold total bytes, doubling
// its capacity (the same append-style growth bytes.Buffer uses) rather
// than growing to exactly fit, so repeated SetStyledText calls of
// similar size don't reallocate every time.
func (b *Buffer) growScratch(total int) {
	if cap(b.scratch) < total {
		newCap := cap(b.scratch)
		if newCap == 0 {
			newCap = 64
		}
		for newCap < total {
			newCap *= 2
		}
		grown := make([]byte, newCap)
		b.scratch = grown
	}
	b.scratch = b.scratch[:total]
}

// commitScratchRegion registers the scratch region the first time, then
// replaces it in place on every subsequent call. It and the edit arena
// (appendEdit) are the two buffer regions that use the registry's
// Replace.
func (b *Buffer) commitScratchRegion() error {
	if !b.hasScratchMemID {
		id, err := b.registry.Register(b.scratch)
		if err != nil {
			return err
		}
		b.scratchMemID = id
		b.hasScratchMemID = true
		return nil
	}
	b.registry.Replace(b.scratchMemID, b.scratch)
	return nil
}

// SetStyledText concatenates chunk texts into the buffer's scratch
// region, calls SetTextFromMemID over the combined region, then
// registers one style per chunk and highlights that chunk's character
// range at priority 1 — applying per-chunk colors while keeping the
// buffer's one-region, canonical-segments contract.
func (b *Buffer) SetStyledText(chunks []StyledChunk) error {
	total := 0
	for _, c := range chunks {
		total += len(c.Text)
	}
	b.growScratch(total)

	pos := 0
	for _, c := range chunks {
		pos += copy(b.scratch[pos:], c.Text)
	}

	if err := b.commitScratchRegion(); err != nil {
		return err
	}
	if err := b.SetTextFromMemID(b.scratchMemID, 0, total); err != nil {
		return err
	}

	charPos := 0
	for i, c := range chunks {
		_, chars := chunkMeasure(c.Text, b.tabWidth)
		styleID := b.styles.Register(c.Style)
		if chars > 0 {
			if err := b.AddHighlightByCharRange(charPos, charPos+chars, styleID, 1, int64(i)); err != nil {
				return err
			}
		}
		charPos += chars
	}
	return nil
}
