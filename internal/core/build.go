package core

import "time"

// BuildStats summarizes one generation run.
type BuildStats struct {
	Records      int
	Warnings     int
	PagesWritten int
	PagesSkipped int
}

// Build is a finished generation run as recorded in the manifest.
type Build struct {
	ID         string
	Year       int
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      BuildStats
}
