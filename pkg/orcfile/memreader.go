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
	"context"
	"fmt"
	"io"
)

// MemReader is an in-memory Reader over pre-built batches. It backs tests and
// embedders that already hold decoded vectors; batch columns are parallel to
// the schema's top-level fields. A MemReader holds no handle, so it can be
// reopened after Close.
type MemReader struct {
	schema  *TypeDescription
	batches []*Batch
	closes  int
}

var _ Reader = (*MemReader)(nil)

// NewMemReader builds a MemReader over a root struct schema and its batches.
func NewMemReader(schema *TypeDescription, batches ...*Batch) (*MemReader, error) {
	if schema == nil || schema.Category != CategoryStruct {
		return nil, fmt.Errorf("mem reader schema must be a struct, got %v", schema)
	}
	return &MemReader{schema: schema, batches: batches}, nil
}

func (r *MemReader) Schema() *TypeDescription { return r.schema }

func (r *MemReader) Project(columns []string) (Cursor, error) {
	indexes := make([]int, len(columns))
	for i, name := range columns {
		idx := r.schema.FieldIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("column [%s] does not exist in schema", name)
		}
		indexes[i] = idx
	}
	return &memCursor{reader: r, indexes: indexes}, nil
}

func (r *MemReader) Close() error {
	r.closes++
	return nil
}

// Closes returns how many times Close has been called; used by tests to
// assert deterministic handle release.
func (r *MemReader) Closes() int { return r.closes }

type memCursor struct {
	reader  *MemReader
	indexes []int
	next    int
}

func (c *memCursor) NextBatch() (*Batch, error) {
	if c.next >= len(c.reader.batches) {
		return nil, io.EOF
	}
	src := c.reader.batches[c.next]
	c.next++
	cols := make([]ColumnVector, len(c.indexes))
	for i, idx := range c.indexes {
		if idx < len(src.Cols) {
			cols[i] = src.Cols[idx]
		}
	}
	return &Batch{Size: src.Size, Cols: cols}, nil
}

// OpenMem returns an OpenFunc serving the given path-to-reader table. Useful
// for wiring the bridge in tests and demos without a physical decoder.
func OpenMem(readers map[string]*MemReader) OpenFunc {
	return func(_ context.Context, path string) (Reader, error) {
		r, ok := readers[path]
		if !ok {
			return nil, fmt.Errorf("no reader registered for path %s", path)
		}
		return r, nil
	}
}
