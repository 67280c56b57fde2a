// Package tables turns recognized text into structured tables.
//
// Recognition output is a flat sequence of text lines with no table
// markup, so the package works in two stages: block selection and
// structuring.
//
// # Selection
//
// The [Selector] picks the run of lines most likely to form one
// table. Page markers, footnote lines, and noise are filtered, the
// first line with two or more tokens anchors the block, and following
// lines join the block while they resemble the anchor or carry
// digits. When nothing structured is found, lines longer than the
// salvage length are kept as a best-effort block:
//
//	block := tables.Select(strings.Split(text, "\n"))
//
// # Structuring
//
// The [Structurer] splits a block into headers and rows and builds
// typed records from the raw tokens. The first token of each row is
// its label; the rest map positionally onto the headers, falling back
// to synthetic column names past the header count:
//
//	table := tables.Structure(block)
//	for _, record := range table.Cleaned {
//		fmt.Println(record["Label"], record["Sales"])
//	}
//
// Both stages are total: empty or unusable input produces an empty
// block or table, never an error, and rows are preserved even when
// their value count disagrees with the header count.
//
// # Configuration
//
// Behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.TokenWindow = 3
//	selector := tables.NewSelector()
//	selector.Configure(config)
//
// Configuration options include:
//
//   - SkipPrefixes - line prefixes that are never table content
//   - TokenWindow - allowed deviation from the anchor token count
//   - MinBlockLines - rows required before a mismatch ends the block
//   - SalvageMinLength - line length kept by the salvage pass
//   - FallbackColumns - synthetic header count when none derive
package tables
