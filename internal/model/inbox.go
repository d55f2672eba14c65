package model

// InboxEntry is a file observed directly inside the inbox at scan time.
type InboxEntry struct {
	Name  string
	IsDir bool
}

// HiddenPrefix marks entries the scanner ignores.
const HiddenPrefix = "."
