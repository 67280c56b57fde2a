// Package insights produces summary statistics and simple analyses
// from extracted tables.
//
// Analysis runs over a [Dataset], a column-oriented view built from a
// [model.Table], from record maps, or from raw string rows:
//
//	ds := insights.FromTable(table)
//	summary := insights.Summarize(ds)
//	fmt.Println(summary.Quality.Overall)
//
// [Summarize] bundles five independent analyses: per-column statistics
// for numeric columns, the most frequent values of a categorical
// column, a least-squares trend over the first numeric column, a
// three-part data quality score, and interquartile-range outlier
// detection. Each is also available on its own through a [Generator],
// which carries the tunable parameters:
//
//	g := insights.NewGenerator()
//	g.Configure(insights.Config{TopCategories: 10, OutlierFactor: 3})
//	anomalies := g.Anomalies(ds)
//
// All analyses are pure functions of the dataset. An empty dataset
// yields empty results, never an error.
package insights
