package download

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an orchestrator progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Line is the manifest line the event refers to, or 0 for run-wide events.
	Line int

	// RunID identifies the run that produced the event.
	RunID string
}

// State is a step of the orchestrator's state machine.
type State int32

const (
	StateIdle State = iota
	StateReading
	StateDispatching
	StateDownloading
	StatePlaying
	StateDone
	StateFailed
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateDispatching:
		return "dispatching"
	case StateDownloading:
		return "downloading"
	case StatePlaying:
		return "playing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Finished reports whether the run has ended.
func (s State) Finished() bool {
	return s == StateDone || s == StateFailed
}

// Stats is a snapshot of run counters.
type Stats struct {
	LinesRead  int32
	Skipped    int32
	Downloaded int32
	Played     int32
	Bytes      int64
}
