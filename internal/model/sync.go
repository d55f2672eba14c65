package model

// SyncStep names a stage of the repository synchronization pipeline.
type SyncStep string

// Synchronization steps, in execution order.
const (
	StepSetup      SyncStep = "setup"
	StepStage      SyncStep = "stage"
	StepCheckDirty SyncStep = "check-dirty"
	StepCommit     SyncStep = "commit"
	StepPush       SyncStep = "push"
)

// SyncReport describes how far a synchronization got.
type SyncReport struct {
	Err       error
	Step      SyncStep
	Message   string
	Output    string
	Committed bool
	Pushed    bool
	Clean     bool
}

// Succeeded reports whether the synchronization finished without failure.
func (r SyncReport) Succeeded() bool {
	return r.Err == nil
}
