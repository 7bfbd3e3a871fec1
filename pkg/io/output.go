package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/errors"
)

// ReplaceWithBackup writes data to path, renaming the existing file to
// path+suffix first. It returns the backup path.
func ReplaceWithBackup(path string, data []byte, suffix string, logger *log.Logger) (string, error) {
	if err := errors.ValidateBackupSuffix(suffix); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	backup := path + suffix

	tmp, err := writeTemp(filepath.Dir(path), filepath.Base(path), data, info.Mode().Perm())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}

	if err := os.Rename(path, backup); err != nil {
		os.Remove(tmp)
		return "", errors.Wrap(errors.ErrCodeIO, err, "can not rename %s to %s", path, backup)
	}
	if err := os.Rename(tmp, path); err != nil {
		// Put the original back so the input path is never left empty.
		if rerr := os.Rename(backup, path); rerr != nil && logger != nil {
			logger.Error("restore failed", "backup", backup, "err", rerr)
		}
		os.Remove(tmp)
		return "", errors.Wrap(errors.ErrCodeIO, err, "replace %s", path)
	}

	if logger != nil {
		logger.Debug("replaced", "file", path, "backup", backup, "bytes", len(data))
	}
	return backup, nil
}

func writeTemp(dir, base string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// Print writes data to w, for runs that leave the input untouched.
func Print(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write output")
	}
	return nil
}

// Create creates path for writing, reporting failures as IO_ERROR.
func Create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	return f, nil
}

// checkClose closes c and keeps the first error.
func checkClose(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close: %w", cerr)
	}
}

// WriteArtifact writes a side output such as a traversal graph to path.
func WriteArtifact(path string, data []byte) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer checkClose(f, &err)
	if _, err := f.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
