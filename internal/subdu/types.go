package subdu

import "errors"

var (
	// ErrNotFound is returned when the root path does not exist.
	ErrNotFound = errors.New("path not found")
	// ErrPermission is returned when the root path cannot be listed.
	ErrPermission = errors.New("permission denied")
	// ErrNotDirectory is returned when the root path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Options configures a measurement run.
type Options struct {
	// Path is the root whose immediate subdirectories are measured.
	Path string
	// Workers is the number of concurrent walks (0 = number of CPUs).
	Workers int
}

// Result is the outcome of measuring one subdirectory.
type Result struct {
	// Path is the measured subdirectory.
	Path string
	// Bytes is the sum of all regular file sizes beneath Path.
	Bytes int64
	// Skipped is the number of entries that could not be read or stat'ed.
	Skipped int
	// Err combines the errors of the skipped entries.
	Err error
}

// Outcome reports how a run ended.
type Outcome int

const (
	// Completed means every subdirectory was measured.
	Completed Outcome = iota
	// Interrupted means the run was cancelled before finishing.
	Interrupted
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// State is a phase of the coordinator.
type State int

const (
	// Running means tasks are being dispatched and results consumed.
	Running State = iota
	// Draining means all tasks were submitted and the pool is closing.
	Draining
	// InterruptReceived means the context was cancelled.
	InterruptReceived
	// Terminating means the pool is being torn down.
	Terminating
	// Exited is the final state.
	Exited
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Draining:
		return "draining"
	case InterruptReceived:
		return "interrupt-received"
	case Terminating:
		return "terminating"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}
