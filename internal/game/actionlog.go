package game

import (
	"fmt"
	"slices"
)

// ActionLogSize is how many entries the round keeps.
const ActionLogSize = 6

// ActionLog holds the most recent round events, newest first.
type ActionLog struct {
	entries []string
}

// Addf prepends a formatted entry, dropping the oldest past ActionLogSize.
func (l *ActionLog) Addf(format string, args ...any) {
	entry := fmt.Sprintf(format, args...)
	l.entries = slices.Insert(l.entries, 0, entry)
	if len(l.entries) > ActionLogSize {
		l.entries = l.entries[:ActionLogSize]
	}
}

// Entries returns a copy of the log, newest first.
func (l *ActionLog) Entries() []string {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *ActionLog) Len() int {
	return len(l.entries)
}
