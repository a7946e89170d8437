// Package executor runs parsed directives as child processes.
//
// Every command on a line is started before any of them is waited on, so
// commands run in parallel. All children are reaped before Execute returns.
package executor

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/josephlewis42/sheller/core/parser"
	"github.com/spf13/afero"
)

// Executor starts and reaps the processes for a line of directives.
type Executor struct {
	// Fs is used to resolve program names.
	Fs afero.Fs
	// PathEnv is the search path for program names without a slash.
	PathEnv string
	// Env is the environment given to children. If nil, children get the
	// current process's environment; use an empty slice for none.
	Env []string
	// Dir is the working directory of children, empty for the current one.
	// Relative program paths are resolved against it.
	Dir string
	// Files are the file descriptors children inherit as 0, 1, 2... If nil,
	// children share the current process's standard streams.
	Files []uintptr

	proc procControl
}

// New creates an Executor that runs children with the current process's
// environment, search path, working directory and standard streams.
func New() *Executor {
	return &Executor{
		Fs:      afero.NewOsFs(),
		PathEnv: os.Getenv("PATH"),
		Env:     os.Environ(),
		Files:   []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()},
		proc:    unixProc{},
	}
}

func (e *Executor) procs() procControl {
	if e.proc == nil {
		return unixProc{}
	}
	return e.proc
}

func (e *Executor) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func (e *Executor) procAttr() *syscall.ProcAttr {
	attr := &syscall.ProcAttr{
		Dir:   e.Dir,
		Env:   e.Env,
		Files: e.Files,
	}
	if attr.Env == nil {
		attr.Env = os.Environ()
	}
	if attr.Files == nil {
		attr.Files = []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()}
	}
	return attr
}

// Execute dispatches the directives in order and then waits for every
// child it started.
//
// Commands that can't be found or exec'd get a Result with a LaunchErr and
// don't stop the rest of the line. A failure to fork stops dispatch, but the
// children already running are still reaped. Wait failures are collected
// and don't stop the remaining waits. The returned Outcome is always
// non-nil; the error, if any, joins every ProcessError that occurred.
func (e *Executor) Execute(directives []parser.Directive) (*Outcome, error) {
	outcome := &Outcome{Signal: Continue}
	quit := false

	// Indexes into outcome.Results of commands with a running child.
	var running []int
	var errs []error

	proc := e.procs()
	attr := e.procAttr()

dispatch:
	for _, directive := range directives {
		switch directive.Kind {
		case parser.Terminate:
			quit = true

		case parser.RunCommand:
			result := Result{Command: directive.Command, Pid: -1}

			path, err := LookPathIn(e.fs(), e.Dir, e.PathEnv, directive.Command.Name)
			if err != nil {
				result.LaunchErr = err
				outcome.Results = append(outcome.Results, result)
				continue
			}
			result.Path = path

			pid, err := proc.start(path, directive.Command.Argv(), attr)
			switch {
			case err == nil:
				result.Pid = pid
				running = append(running, len(outcome.Results))
			case isLaunchFailure(err):
				result.LaunchErr = fmt.Errorf("exec: %q: %w", path, err)
			default:
				errs = append(errs, &ProcessError{Op: "fork/exec", Pid: -1, Command: directive.Command, Err: err})
				break dispatch
			}
			outcome.Results = append(outcome.Results, result)

		default:
			errs = append(errs, fmt.Errorf("unknown directive %v", directive.Kind))
			break dispatch
		}
	}

	for _, idx := range running {
		result := &outcome.Results[idx]
		status, err := proc.wait(result.Pid)
		if err != nil {
			errs = append(errs, &ProcessError{Op: "wait", Pid: result.Pid, Command: result.Command, Err: err})
			continue
		}
		result.Status = status
	}

	if quit {
		outcome.Signal = Quit
	}

	return outcome, errors.Join(errs...)
}
