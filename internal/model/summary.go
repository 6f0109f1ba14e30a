package model

import "time"

// IngestSummary captures metrics from a single upload run.
type IngestSummary struct {
	UploadID         string
	BudgetFile       string
	ClaimsFile       string
	BudgetSHA256     string
	ClaimsSHA256     string
	AlreadyLoaded    bool
	BudgetRowsRead   int64
	BudgetRowsStaged int64
	ClaimsRowsRead   int64
	ClaimsRowsStaged int64
	IssuesStaged     int64
	Warnings         int
	Errors           int
	DurationRead     time.Duration
	DurationCopy     time.Duration
	DurationTotal    time.Duration
}
