package model

import "time"

// RunSummary aggregates the results of one organize run.
type RunSummary struct {
	StartedAt   time.Time
	FinishedAt  time.Time
	Sync        *SyncReport
	Relocations []Relocation
	Scanned     int
	Moved       int
	Failed      int
	Fallbacks   int
	InboxNew    bool
	DryRun      bool
	Interrupted bool
}

// Add records a relocation outcome.
func (s *RunSummary) Add(r Relocation) {
	s.Relocations = append(s.Relocations, r)
	if r.Succeeded() {
		s.Moved++
	} else {
		s.Failed++
	}
	if r.Source == SourceDefault && r.ClassifyReason != "" {
		s.Fallbacks++
	}
}

// RunInfo identifies a run when it starts.
type RunInfo struct {
	StartedAt  time.Time
	Root       string
	Classifier string
	DryRun     bool
}
