package domain

import "time"

// BackupStats holds statistics about a backup run.
type BackupStats struct {
	Books    int
	Object   string
	Bytes    int
	Duration time.Duration
}
