// Package history keeps a bounded, newest-first log of completed
// calculations for the HTTP server.
package history

import (
	"sync"
	"time"

	"github.com/bennyhartnett/centrus-enrichment-calculator/internal/modes"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/google/uuid"
)

// Entry is one recorded calculation.
type Entry struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Result    modes.Result `json:"result"`
}

// Log is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	limit   int
	entries []Entry // oldest first
	now     func() time.Time
}

// New returns a log holding at most limit entries. A non-positive limit
// selects the default.
func New(limit int) *Log {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	return &Log{limit: limit, now: time.Now}
}

// Add records result and returns its entry, evicting the oldest entry when
// the log is full.
func (l *Log) Add(result modes.Result) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: l.now().UTC(),
		Result:    result,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append([]Entry(nil), l.entries[over:]...)
	}
	return entry
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Get returns the entry with the given id.
func (l *Log) Get(id string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// Len reports the number of entries held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Limit reports the maximum number of entries held.
func (l *Log) Limit() int {
	return l.limit
}
