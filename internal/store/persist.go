// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	filePerm = 0o600
	dirPerm  = 0o700
)

// writeAtomic writes data to a temp file next to path, syncs it and renames
// it over path. The temp file is removed if any step fails.
func writeAtomic(fs afero.Fs, path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	f, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = fs.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}

	if err = f.Sync(); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	if err = fs.Chmod(tmp, os.FileMode(filePerm)); err != nil {
		return err
	}

	return fs.Rename(tmp, path)
}
