// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package orcfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Magic is the ORC format marker, stored at the end of the postscript and,
// in the pre-0.12 variant, at the start of the file.
const Magic = "ORC"

// sniffWindow bounds how much of the file tail is read for detection.
const sniffWindow = 16 * 1024

// DetectFormat reports whether the file at path looks like an ORC file,
// independent of its schema. It reads min(file size, 16 KiB) from the tail,
// locates the magic via the postscript-length byte at the final position, and
// falls back to the header-only marker of the legacy format. A missing marker
// is a false result, not an error; I/O failures are returned as errors.
func DetectFormat(fsys afero.Fs, path string) (bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	st, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	size := st.Size()
	if size == 0 {
		return false, nil
	}

	readSize := size
	if readSize > sniffWindow {
		readSize = sniffWindow
	}
	tail := make([]byte, readSize)
	if _, err := f.ReadAt(tail, size-readSize); err != nil {
		return false, fmt.Errorf("failed to read tail of %s: %w", path, err)
	}

	psLen := int(tail[len(tail)-1])
	if psLen >= len(Magic)+1 && len(tail) >= len(Magic)+1 {
		offset := len(tail) - 1 - len(Magic)
		if string(tail[offset:offset+len(Magic)]) == Magic {
			return true, nil
		}
	}

	// No trailer marker; this may be the 0.11 variant that only carries the
	// marker in the file header.
	header := make([]byte, len(Magic))
	if _, err := f.ReadAt(header, 0); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return string(header) == Magic, nil
}
