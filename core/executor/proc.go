package executor

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// procControl creates and reaps child processes.
type procControl interface {
	// start forks a child that immediately execs path. The child never runs
	// any of the parent's code; if exec fails the child exits and start
	// returns the exec error.
	start(path string, argv []string, attr *syscall.ProcAttr) (pid int, err error)
	// wait blocks until pid terminates and reaps it.
	wait(pid int) (unix.WaitStatus, error)
}

type unixProc struct{}

var _ procControl = unixProc{}

func (unixProc) start(path string, argv []string, attr *syscall.ProcAttr) (int, error) {
	return syscall.ForkExec(path, argv, attr)
}

func (unixProc) wait(pid int) (unix.WaitStatus, error) {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		return status, err
	}
}

// launchErrnos are exec failures caused by the program itself rather than
// by the system running out of resources.
var launchErrnos = []error{
	unix.ENOENT,
	unix.EACCES,
	unix.EPERM,
	unix.ENOEXEC,
	unix.EISDIR,
	unix.ENOTDIR,
	unix.ELOOP,
	unix.ENAMETOOLONG,
	unix.ETXTBSY,
	unix.E2BIG,
}

func isLaunchFailure(err error) bool {
	for _, errno := range launchErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
