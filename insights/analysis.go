package insights

import (
	"math"
	"sort"
	"strings"
)

// Direction labels the sign of a fitted trend slope.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionFlat       Direction = "flat"
)

// Trend is a first-degree least-squares fit over one numeric column.
// The x axis is the row position, so the slope reads as change per
// row; XColumn names the column the rows are implicitly ordered by.
type Trend struct {
	XColumn   string    `json:"x_column"`
	YColumn   string    `json:"y_column"`
	Direction Direction `json:"trend"`
	Slope     float64   `json:"slope"`
	RSquared  float64   `json:"r_squared"`
}

// Trend fits a line through a numeric column and reports its slope,
// fit quality and direction. Empty column names auto-detect: y is the
// first numeric column and x the first remaining column. The fit uses
// row positions as x values and skips rows whose y cell is missing;
// fewer than two valid points, no numeric column, or no second column
// to order by all yield nil.
func (g *Generator) Trend(ds *Dataset, xColumn, yColumn string) *Trend {
	if ds.IsEmpty() {
		return nil
	}

	if yColumn == "" {
		numeric := ds.NumericColumns()
		if len(numeric) == 0 {
			return nil
		}
		yColumn = numeric[0]
	}
	if xColumn == "" {
		for _, name := range ds.columns {
			if name != yColumn {
				xColumn = name
				break
			}
		}
	}
	yIdx, yOK := ds.columnIndex(yColumn)
	_, xOK := ds.columnIndex(xColumn)
	if !xOK || !yOK {
		return nil
	}

	values, rows := ds.columnValues(yIdx)
	if len(values) < 2 {
		return nil
	}
	xs := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = float64(row)
	}

	slope, intercept := fitLine(xs, values)

	direction := DirectionFlat
	switch {
	case slope > 0:
		direction = DirectionIncreasing
	case slope < 0:
		direction = DirectionDecreasing
	}

	return &Trend{
		XColumn:   xColumn,
		YColumn:   yColumn,
		Direction: direction,
		Slope:     slope,
		RSquared:  rSquared(xs, values, slope, intercept),
	}
}

// QualityBreakdown holds the three quality sub-scores, each 0-100.
type QualityBreakdown struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Uniqueness   float64 `json:"uniqueness"`
}

// QualityScore grades a dataset 0-100 as the mean of completeness
// (cells holding a value), consistency (columns keeping one value
// type) and uniqueness (rows surviving duplicate removal).
type QualityScore struct {
	Overall   float64          `json:"overall_score"`
	Breakdown QualityBreakdown `json:"breakdown"`
	Reason    string           `json:"reason,omitempty"`
}

// Quality scores the dataset. An empty dataset scores zero with the
// reason stated; it is not an error.
func (g *Generator) Quality(ds *Dataset) QualityScore {
	if ds.IsEmpty() {
		return QualityScore{Reason: "empty dataset"}
	}

	rows := ds.RowCount()
	cols := ds.ColumnCount()

	missing := 0
	for _, row := range ds.cells {
		for _, cell := range row {
			if cell.IsEmpty() {
				missing++
			}
		}
	}
	completeness := (1 - float64(missing)/float64(rows*cols)) * 100

	// A column counts as consistent when its non-missing cells all
	// share one kind; a column with no values at all does not count.
	consistent := 0
	for j := range ds.columns {
		kinds := make(map[string]bool)
		for _, row := range ds.cells {
			if cell := row[j]; !cell.IsEmpty() {
				kinds[cell.Kind.String()] = true
			}
		}
		if len(kinds) == 1 {
			consistent++
		}
	}
	consistency := float64(consistent) / float64(cols) * 100

	seen := make(map[string]bool, rows)
	for _, row := range ds.cells {
		keys := make([]string, len(row))
		for j, cell := range row {
			keys[j] = cellKey(cell)
		}
		seen[strings.Join(keys, "\x1f")] = true
	}
	uniqueness := float64(len(seen)) / float64(rows) * 100

	return QualityScore{
		Overall: round1((completeness + consistency + uniqueness) / 3),
		Breakdown: QualityBreakdown{
			Completeness: round1(completeness),
			Consistency:  round1(consistency),
			Uniqueness:   round1(uniqueness),
		},
	}
}

// Anomaly reports the outliers of one numeric column. Values and Rows
// are parallel: Values[i] sits at row Rows[i].
type Anomaly struct {
	Kind   string    `json:"type"`
	Column string    `json:"column"`
	Count  int       `json:"count"`
	Values []float64 `json:"values"`
	Rows   []int     `json:"indices"`
}

// Anomalies finds outliers in every numeric column using the
// interquartile range: a value outside
// [Q1 - k*IQR, Q3 + k*IQR] is an outlier, with k the configured
// outlier factor. Quartiles interpolate linearly between order
// statistics. Columns without outliers are omitted.
func (g *Generator) Anomalies(ds *Dataset) []Anomaly {
	var anomalies []Anomaly
	if ds.IsEmpty() {
		return anomalies
	}

	for j, name := range ds.columns {
		if !ds.isNumericColumn(j) {
			continue
		}
		values, rows := ds.columnValues(j)

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		q1 := quantile(sorted, 0.25)
		q3 := quantile(sorted, 0.75)
		iqr := q3 - q1
		lower := q1 - g.config.OutlierFactor*iqr
		upper := q3 + g.config.OutlierFactor*iqr

		var outliers []float64
		var outlierRows []int
		for i, v := range values {
			if v < lower || v > upper {
				outliers = append(outliers, v)
				outlierRows = append(outlierRows, rows[i])
			}
		}
		if len(outliers) == 0 {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Kind:   "outlier",
			Column: name,
			Count:  len(outliers),
			Values: outliers,
			Rows:   outlierRows,
		})
	}
	return anomalies
}

// columnStats computes the five summary statistics over the values.
func columnStats(values []float64) ColumnStats {
	stats := ColumnStats{Min: values[0], Max: values[0]}
	for _, v := range values {
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
		stats.Sum += v
	}
	stats.Mean = stats.Sum / float64(len(values))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	stats.Median = quantile(sorted, 0.5)
	return stats
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between the two nearest order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// fitLine computes the least-squares line through the points.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	meanX := mean(xs)
	meanY := mean(ys)

	var num, den float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, meanY
	}
	slope = num / den
	return slope, meanY - slope*meanX
}

// rSquared measures how well the fitted line explains the variance of
// ys. Zero variance reports zero rather than dividing by it.
func rSquared(xs, ys []float64, slope, intercept float64) float64 {
	meanY := mean(ys)

	var ssRes, ssTot float64
	for i := range ys {
		predicted := slope*xs[i] + intercept
		ssRes += (ys[i] - predicted) * (ys[i] - predicted)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
