// Package loader discovers and parses contestant CSV files.
//
// One CSV per contestant; the file stem names the contestant. Files with
// missing columns or no data rows are skipped with a logged error, and the
// load fails only when nothing at all could be read.
package loader
