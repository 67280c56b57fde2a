// Package validate checks extracted tables for quality problems.
//
// [Validate] is a pure function over the raw row form of a table. It
// runs independent checks for structural consistency, duplicate rows,
// missing values, mixed column types, and a header row left in the
// data, and returns everything it found in one [Result]:
//
//	result := validate.Validate(table.Rows)
//	if !result.IsValid {
//		log.Println(result.Errors)
//	}
//	for _, warning := range result.Warnings {
//		fmt.Println(warning.Kind, warning.Message)
//	}
//
// Only an empty table is an error; every other finding is a warning
// and never invalidates the table.
//
// The package also carries the export-side helpers: [Sanitize] trims
// and drops empty rows before encoding, [Compare] diffs two tables
// cell by cell, and [DetectHeaders] spots a header row.
package validate
