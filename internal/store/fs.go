// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"time"

	"github.com/spf13/afero"
)

// FsFactory returns the filesystem used by Open.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Now returns the time used to stamp entries.
var Now = func() time.Time {
	return time.Now().UTC()
}
