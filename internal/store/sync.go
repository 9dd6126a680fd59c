package store

import (
	"fmt"
	"time"
)

// Data types tracked in sync_status.
const (
	SyncTypeTrades    = "trades"
	SyncTypeTransfers = "transfers"
)

// DefaultStaleAfter is how old a snapshot can get before it is flagged.
const DefaultStaleAfter = 30 * time.Minute

// DataFreshness describes the age of a snapshot.
type DataFreshness struct {
	DataType    string
	LastUpdated time.Time
	IsFresh     bool
	Age         time.Duration
}

// Freshness reports how old the snapshot of dataType is relative to now.
func Freshness(s Store, dataType string, staleAfter time.Duration, now time.Time) DataFreshness {
	last := s.GetLastSync(dataType)
	f := DataFreshness{DataType: dataType, LastUpdated: last}
	if last.IsZero() {
		return f
	}
	f.Age = now.Sub(last)
	if f.Age < 0 {
		f.Age = 0
	}
	f.IsFresh = f.Age <= staleAfter
	return f
}

// FormatFreshness returns a human-readable freshness string.
func FormatFreshness(freshness DataFreshness) string {
	if freshness.LastUpdated.IsZero() {
		return "Never synced"
	}

	age := freshness.Age
	var ageStr string

	switch {
	case age < time.Minute:
		ageStr = "just now"
	case age < time.Hour:
		ageStr = fmt.Sprintf("%d minutes ago", int(age.Minutes()))
	case age < 24*time.Hour:
		ageStr = fmt.Sprintf("%d hours ago", int(age.Hours()))
	default:
		ageStr = fmt.Sprintf("%d days ago", int(age.Hours()/24))
	}

	if freshness.IsFresh {
		return fmt.Sprintf("Updated %s", ageStr)
	}
	return fmt.Sprintf("Stale data - updated %s", ageStr)
}
