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

// Package orcconv bridges ORC column batches into unified rows: it reconciles
// the file-declared schema against an optional target schema, decodes nested
// cells, and appends partition values. Physical byte-level decoding belongs
// to the orcfile.Reader collaborator.
package orcconv

import "github.com/cardinalhq/orcbridge/pkg/unified"

// Sink accepts one row at a time. Ownership of the row passes to the sink;
// backpressure is the sink's contract to honor.
type Sink interface {
	Collect(row *unified.Row) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(row *unified.Row) error

func (f SinkFunc) Collect(row *unified.Row) error { return f(row) }
