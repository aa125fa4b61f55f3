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

import "context"

// Reader is the columnar-reader collaborator: it owns the physical byte-level
// decoding of one open ORC file and exposes its schema and batch cursors.
// Implementations are not required to be safe for concurrent use.
type Reader interface {
	// Schema returns the file-declared root struct type.
	Schema() *TypeDescription

	// Project returns a cursor over the named top-level columns, in the
	// given order. Every name must exist in the file schema.
	Project(columns []string) (Cursor, error)

	// Close releases the underlying file handle. Safe to call more than once.
	Close() error
}

// Cursor pulls successive column batches in file order.
type Cursor interface {
	// NextBatch returns the next batch, or io.EOF after the last one. The
	// returned batch is only valid until the next pull.
	NextBatch() (*Batch, error)
}

// OpenFunc opens the columnar reader for one file path.
type OpenFunc func(ctx context.Context, path string) (Reader, error)
