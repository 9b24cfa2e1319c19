package domain

import "errors"

var (
	ErrRunNotFound     = errors.New("run not found")
	ErrNoRuns          = errors.New("no runs archived")
	ErrNoPosts         = errors.New("no posts to analyze")
	ErrNoResults       = errors.New("no contestant results")
	ErrMissingColumns  = errors.New("missing required columns")
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrNoDatasetsFound = errors.New("no datasets found")
)
