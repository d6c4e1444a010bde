package rope

// config holds the tunables set via functional options at construction.
type config struct {
	maxUndoDepth int
}

// Option configures a Rope at construction time.
type Option func(*config)

// WithMaxUndoDepth caps the number of undo entries retained; the oldest
// entries are trimmed once the limit is exceeded. Zero or negative means
// unlimited.
func WithMaxUndoDepth(n int) Option {
	return func(c *config) {
		c.maxUndoDepth = n
	}
}

func defaultConfig() config {
	return config{maxUndoDepth: 0}
}
