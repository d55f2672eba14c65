package model

import "time"

// Relocation records the outcome of moving one inbox file.
type Relocation struct {
	MovedAt        time.Time
	Err            error
	File           string
	Folder         string
	Destination    string
	Source         ClassificationSource
	ClassifyReason string
}

// Succeeded reports whether the file reached its destination.
func (r Relocation) Succeeded() bool {
	return r.Err == nil
}
