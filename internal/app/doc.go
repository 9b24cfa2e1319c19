// Package app provides the application service layer.
//
// Orchestrates the analysis pipeline: load datasets, clean, score, aggregate,
// render charts, archive the run. Depends on domain interfaces, not concrete
// implementations.
package app
