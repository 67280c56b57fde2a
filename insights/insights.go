package insights

import (
	"sort"

	"github.com/tsawler/figura/model"
)

// Config holds summarization tuning parameters
type Config struct {
	// TopCategories is how many categories the frequency ranking
	// reports
	TopCategories int

	// OutlierFactor scales the interquartile range when computing
	// outlier bounds
	OutlierFactor float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		TopCategories: 5,
		OutlierFactor: 1.5,
	}
}

// Generator computes statistics, rankings, trends, quality scores and
// anomalies over a dataset. Every method tolerates an empty dataset
// by returning an empty or zero result.
type Generator struct {
	config Config
}

// NewGenerator creates a generator with default configuration
func NewGenerator() *Generator {
	return &Generator{config: DefaultConfig()}
}

// Configure sets generator parameters
func (g *Generator) Configure(config Config) error {
	g.config = config
	return nil
}

// Summary is the complete analysis report over one dataset.
type Summary struct {
	Statistics    Statistics   `json:"statistics"`
	TopCategories []Category   `json:"top_categories"`
	Trend         *Trend       `json:"trends,omitempty"`
	Quality       QualityScore `json:"data_quality"`
	Anomalies     []Anomaly    `json:"anomalies,omitempty"`
}

// Summarize runs every analysis stage over the dataset and collects
// the results into one report. Stages that cannot produce a result
// (no numeric column for a trend, no outliers) leave their section
// empty rather than failing the report.
func (g *Generator) Summarize(ds *Dataset) Summary {
	return Summary{
		Statistics:    g.Statistics(ds),
		TopCategories: g.TopCategories(ds, ""),
		Trend:         g.Trend(ds, "", ""),
		Quality:       g.Quality(ds),
		Anomalies:     g.Anomalies(ds),
	}
}

// Summarize runs the generator with default configuration.
func Summarize(ds *Dataset) Summary {
	return NewGenerator().Summarize(ds)
}

// ColumnStats holds the summary statistics of one numeric column.
type ColumnStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Sum    float64 `json:"sum"`
}

// Statistics describes the shape of the dataset and summarizes its
// numeric columns.
type Statistics struct {
	RowCount    int                    `json:"row_count"`
	ColumnCount int                    `json:"column_count"`
	Columns     []string               `json:"columns"`
	Numeric     map[string]ColumnStats `json:"numeric_summary,omitempty"`
}

// Statistics returns row and column counts plus min, max, mean,
// median and sum for every numeric column.
func (g *Generator) Statistics(ds *Dataset) Statistics {
	if ds.IsEmpty() {
		return Statistics{Columns: []string{}}
	}

	stats := Statistics{
		RowCount:    ds.RowCount(),
		ColumnCount: ds.ColumnCount(),
		Columns:     ds.Columns(),
	}
	for j, name := range ds.columns {
		if !ds.isNumericColumn(j) {
			continue
		}
		values, _ := ds.columnValues(j)
		if stats.Numeric == nil {
			stats.Numeric = make(map[string]ColumnStats)
		}
		stats.Numeric[name] = columnStats(values)
	}
	return stats
}

// ColumnStatistics summarizes one column by name regardless of its
// inferred type: non-numeric cells are treated as missing rather than
// disqualifying the column. The second return value is false when the
// column does not exist or holds no numeric values at all.
func (g *Generator) ColumnStatistics(ds *Dataset, column string) (ColumnStats, bool) {
	idx, ok := ds.columnIndex(column)
	if !ok {
		return ColumnStats{}, false
	}
	values, _ := ds.columnValues(idx)
	if len(values) == 0 {
		return ColumnStats{}, false
	}
	return columnStats(values), true
}

// Category is one value of a categorical column with its frequency.
type Category struct {
	Value string `json:"category"`
	Count int    `json:"count"`
}

// TopCategories returns the most frequent values of a column, most
// frequent first; ties keep their order of first appearance. An empty
// column name picks the first non-numeric column, falling back to the
// first column when every column is numeric. Empty cells are not
// counted.
func (g *Generator) TopCategories(ds *Dataset, column string) []Category {
	if ds.IsEmpty() {
		return nil
	}

	if column == "" {
		column = g.pickCategorical(ds)
	}
	idx, ok := ds.columnIndex(column)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	first := make(map[string]int)
	for _, row := range ds.cells {
		cell := row[idx]
		if cell.IsEmpty() {
			continue
		}
		key := cell.String()
		if _, seen := counts[key]; !seen {
			first[key] = len(first)
		}
		counts[key]++
	}
	if len(counts) == 0 {
		return nil
	}

	categories := make([]Category, 0, len(counts))
	for value, count := range counts {
		categories = append(categories, Category{Value: value, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return first[categories[i].Value] < first[categories[j].Value]
	})

	if len(categories) > g.config.TopCategories {
		categories = categories[:g.config.TopCategories]
	}
	return categories
}

// pickCategorical returns the first non-numeric column, or the first
// column when every column is numeric.
func (g *Generator) pickCategorical(ds *Dataset) string {
	numeric := make(map[string]bool)
	for _, name := range ds.NumericColumns() {
		numeric[name] = true
	}
	for _, name := range ds.columns {
		if !numeric[name] {
			return name
		}
	}
	return ds.columns[0]
}

// cellKey produces a comparison key that separates equal renderings
// of different kinds, so the integer 5 and the text "5" never collide
// during duplicate detection.
func cellKey(c model.Cell) string {
	return c.Kind.String() + ":" + c.String()
}
