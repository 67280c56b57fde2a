package tables

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/figura/model"
)

// Selector segments recognized text lines into a candidate table
// block. It never fails: input with no table structure yields an
// empty block.
type Selector struct {
	config Config
}

// NewSelector creates a selector with default configuration
func NewSelector() *Selector {
	return &Selector{config: DefaultConfig()}
}

// Configure sets selector parameters
func (s *Selector) Configure(config Config) error {
	s.config = config
	return nil
}

// Select finds the table block in recognized text lines. Lines are
// filtered for obvious non-table content, the first line with two or
// more tokens anchors the block, and following lines stay in the
// block while they resemble the anchor or carry digits. When no block
// emerges, any line longer than the salvage length is kept as a
// best-effort block.
func (s *Selector) Select(lines []string) model.TableBlock {
	// Step 1: trim and drop blank and known non-table lines
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if s.skipLine(trimmed) {
			continue
		}
		filtered = append(filtered, trimmed)
	}

	// Step 2: the first line with at least two tokens anchors the block
	start := 0
	for i, line := range filtered {
		if len(strings.Fields(line)) >= 2 {
			start = i
			break
		}
	}

	// Step 3: accumulate lines that resemble the anchor line
	var block model.TableBlock
	if start < len(filtered) {
		baseline := len(strings.Fields(filtered[start]))

		for _, line := range filtered[start:] {
			tokens := strings.Fields(line)
			if len(tokens) == 0 {
				continue
			}

			tokenMatch := abs(len(tokens)-baseline) <= s.config.TokenWindow
			if tokenMatch || hasDigit(line) || len(tokens) >= 2 {
				block = append(block, line)
			} else if len(block) >= s.config.MinBlockLines {
				// A non-matching line after enough rows ends the table
				break
			}
		}
	}

	// Step 4: salvage pass when nothing structured was found
	if len(block) == 0 {
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if utf8.RuneCountInString(trimmed) > s.config.SalvageMinLength {
				block = append(block, trimmed)
			}
		}
	}

	return block
}

// skipLine reports whether a trimmed, non-blank line is known
// non-table content.
func (s *Selector) skipLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range s.config.SkipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return utf8.RuneCountInString(line) < s.config.MinLineLength
}

// Select runs the block selector with default configuration.
func Select(lines []string) model.TableBlock {
	return NewSelector().Select(lines)
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
