package model

// ClassificationSource indicates how a folder was chosen.
type ClassificationSource string

// Classification source constants.
const (
	SourceRule      ClassificationSource = "rule"
	SourceInference ClassificationSource = "inference"
	SourceDefault   ClassificationSource = "default"
)

// ClassificationResult is the folder chosen for a file. Folder is never
// empty; when classification fell back to the default folder, Err keeps the
// reason so callers can log it.
type ClassificationResult struct {
	Err     error
	Folder  string
	Keyword string
	Source  ClassificationSource
}

// Fallback reports whether the result is the default folder because of a failure.
func (r ClassificationResult) Fallback() bool {
	return r.Source == SourceDefault && r.Err != nil
}
