package executor

import (
	"fmt"

	"github.com/josephlewis42/sheller/core/parser"
	"golang.org/x/sys/unix"
)

// ExitCodeLaunchFailure is reported for commands that couldn't be started,
// matching what POSIX shells use for "command not found".
const ExitCodeLaunchFailure = 127

// SessionSignal tells the front end whether to keep prompting.
type SessionSignal int

const (
	Continue SessionSignal = iota
	Quit
)

func (s SessionSignal) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("SessionSignal(%d)", int(s))
	}
}

// Result is what happened to a single command.
type Result struct {
	Command parser.Command
	// Path is the resolved program path, empty if lookup failed.
	Path string
	// Pid of the child, or -1 if none was started.
	Pid    int
	Status unix.WaitStatus
	// LaunchErr is set if the program couldn't be found or exec'd.
	LaunchErr error
}

// Signaled reports whether the child was killed by a signal.
func (r Result) Signaled() bool {
	return r.LaunchErr == nil && r.Status.Signaled()
}

// ExitCode follows shell conventions: the exit status for normal exits,
// 128+n for death by signal n, and ExitCodeLaunchFailure if the program
// never started.
func (r Result) ExitCode() int {
	switch {
	case r.LaunchErr != nil:
		return ExitCodeLaunchFailure
	case r.Status.Signaled():
		return 128 + int(r.Status.Signal())
	default:
		return r.Status.ExitStatus()
	}
}

// Success reports whether the command ran and exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode() == 0
}

func (r Result) String() string {
	switch {
	case r.LaunchErr != nil:
		return r.LaunchErr.Error()
	case r.Status.Signaled():
		return fmt.Sprintf("%s: signal: %v", r.Command.Name, r.Status.Signal())
	default:
		return fmt.Sprintf("%s: exit status %d", r.Command.Name, r.Status.ExitStatus())
	}
}

// Outcome collects the results of every command on a line, in the order
// they appeared.
type Outcome struct {
	Signal  SessionSignal
	Results []Result
}

// ExitCode is the exit code of the last command, or 0 if there were none.
func (o *Outcome) ExitCode() int {
	if o == nil || len(o.Results) == 0 {
		return 0
	}
	return o.Results[len(o.Results)-1].ExitCode()
}

// ProcessError is a failure to create or reap a child process.
type ProcessError struct {
	// Op is the operation that failed, "fork/exec" or "wait".
	Op      string
	Pid     int
	Command parser.Command
	Err     error
}

func (e *ProcessError) Error() string {
	if e.Pid > 0 {
		return fmt.Sprintf("%s %s (pid %d): %v", e.Op, e.Command.Name, e.Pid, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Command.Name, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
