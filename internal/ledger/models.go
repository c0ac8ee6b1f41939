package ledger

import "time"

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	// RunPartial means at least one source failed while others completed.
	RunPartial RunStatus = "partial"
	RunFailed  RunStatus = "failed"
)

// SourceStatus is the outcome of one source within a run.
type SourceStatus string

const (
	SourceCompleted SourceStatus = "completed"
	SourceFailed    SourceStatus = "failed"
	// SourceDeclined means the operator did not acknowledge duplicate warnings.
	SourceDeclined SourceStatus = "declined"
)

// Run modes.
const (
	ModeMatch = "match"
	ModeMerge = "merge"
)

// Counts holds classification totals.
type Counts struct {
	Matched      int
	Unmatched    int
	MultiMatched int
}

// Total returns the number of classified rows.
func (c Counts) Total() int {
	return c.Matched + c.Unmatched + c.MultiMatched
}

// Add returns the element-wise sum of c and other.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Matched:      c.Matched + other.Matched,
		Unmatched:    c.Unmatched + other.Unmatched,
		MultiMatched: c.MultiMatched + other.MultiMatched,
	}
}

// Run is one ledger run entry.
type Run struct {
	ID            string
	Mode          string
	Status        RunStatus
	InputDir      string
	OutputDir     string
	StartedAt     time.Time
	FinishedAt    time.Time
	Sources       int
	FailedSources int
	Counts        Counts
	ErrorMessage  string
}

// SourceResult is the recorded outcome of one source.
type SourceResult struct {
	ID              int64
	RunID           string
	Source          string
	Status          SourceStatus
	DatasetPath     string
	MatchColumn     string
	Rows            int
	Files           int
	Counts          Counts
	DuplicateFiles  int
	DuplicateValues int
	ErrorMessage    string
	RecordedAt      time.Time
}
