package tables

// Config holds selector and structurer tuning parameters
type Config struct {
	// SkipPrefixes mark lines that are never table content, matched
	// case-insensitively against the start of the line
	SkipPrefixes []string

	// MinLineLength drops shorter lines as noise (in characters)
	MinLineLength int

	// TokenWindow is the allowed deviation from the baseline token
	// count for a line to stay in the block
	TokenWindow int

	// MinBlockLines is how many lines must accumulate before a
	// non-matching line ends the block
	MinBlockLines int

	// SalvageMinLength keeps lines longer than this many characters
	// during the salvage pass
	SalvageMinLength int

	// FallbackColumns is the number of synthetic column names used
	// when no header tokens survive
	FallbackColumns int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		SkipPrefixes:     []string{"page", "source:", "note:", "©", "™"},
		MinLineLength:    2,
		TokenWindow:      2,
		MinBlockLines:    2,
		SalvageMinLength: 3,
		FallbackColumns:  5,
	}
}
