package executor

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// pathEnv. If file contains a slash, it is tried directly and pathEnv is not
// consulted. The result may be an absolute path or a path relative to the
// current directory.
func LookPath(fsys afero.Fs, pathEnv, file string) (string, error) {
	return LookPathIn(fsys, "", pathEnv, file)
}

// LookPathIn is like LookPath but resolves relative paths, whether from file
// or from pathEnv, against dir instead of the current directory. If dir is
// set, the result is absolute.
func LookPathIn(fsys afero.Fs, dir, pathEnv, file string) (string, error) {
	if strings.Contains(file, "/") {
		path := inDir(dir, file)
		if err := findExecutable(fsys, path); err != nil {
			return "", &exec.Error{Name: file, Err: err}
		}
		return path, nil
	}

	for _, elem := range filepath.SplitList(pathEnv) {
		if elem == "" {
			// Unix shell semantics: path element "" means "."
			elem = "."
		}
		path := inDir(dir, filepath.Join(elem, file))
		if err := findExecutable(fsys, path); err == nil {
			return path, nil
		}
	}
	return "", &exec.Error{Name: file, Err: ErrNotFound}
}

func inDir(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}

	joined := filepath.Join(dir, path)
	if abs, err := filepath.Abs(joined); err == nil {
		return abs
	}
	return joined
}
