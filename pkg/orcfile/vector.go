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
	"fmt"

	"github.com/shopspring/decimal"
)

// VectorKind identifies the physical backing storage of a column vector.
type VectorKind int

const (
	VectorLong VectorKind = iota
	VectorDouble
	VectorBytes
	VectorDecimal
	VectorTimestamp
	VectorStruct
	VectorList
	VectorMap
	VectorUnion
)

var vectorKindNames = map[VectorKind]string{
	VectorLong:      "LONG",
	VectorDouble:    "DOUBLE",
	VectorBytes:     "BYTES",
	VectorDecimal:   "DECIMAL",
	VectorTimestamp: "TIMESTAMP",
	VectorStruct:    "STRUCT",
	VectorList:      "LIST",
	VectorMap:       "MAP",
	VectorUnion:     "UNION",
}

func (k VectorKind) String() string {
	if name, ok := vectorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("VECTOR(%d)", int(k))
}

// ColumnVector is one column of a batch. All vectors of a batch share the
// batch's row count.
type ColumnVector interface {
	Kind() VectorKind
	// IsNull reports whether the cell at row is null, honoring Repeating.
	IsNull(row int) bool
	// IsRepeating reports whether every row shares row 0's value.
	IsRepeating() bool
}

// Column carries the per-row null flags and the repeating flag shared by all
// vector kinds. A nil Nulls slice means no cell is null.
type Column struct {
	Nulls     []bool
	Repeating bool
}

func (c *Column) IsNull(row int) bool {
	if c.Repeating {
		row = 0
	}
	return row < len(c.Nulls) && c.Nulls[row]
}

func (c *Column) IsRepeating() bool { return c.Repeating }

// LongColumn backs all integer-like categories (boolean, byte, short, int,
// long, date) with a shared int64 store.
type LongColumn struct {
	Column
	Vector []int64
}

func (*LongColumn) Kind() VectorKind { return VectorLong }

// DoubleColumn backs float and double categories.
type DoubleColumn struct {
	Column
	Vector []float64
}

func (*DoubleColumn) Kind() VectorKind { return VectorDouble }

// BytesColumn backs string, varchar, char and binary categories.
type BytesColumn struct {
	Column
	Vector [][]byte
}

func (*BytesColumn) Kind() VectorKind { return VectorBytes }

// DecimalColumn backs decimal cells with exact arbitrary-precision values.
type DecimalColumn struct {
	Column
	Vector []decimal.Decimal
}

func (*DecimalColumn) Kind() VectorKind { return VectorDecimal }

// TimestampColumn backs timestamps as a millisecond epoch plus a nanosecond
// field that replaces the sub-second part entirely.
type TimestampColumn struct {
	Column
	Millis []int64
	Nanos  []int32
}

func (*TimestampColumn) Kind() VectorKind { return VectorTimestamp }

// StructColumn holds one parallel child vector per struct field.
type StructColumn struct {
	Column
	Fields []ColumnVector
}

func (*StructColumn) Kind() VectorKind { return VectorStruct }

// ListColumn holds per-row offset/length pairs into a single child vector.
type ListColumn struct {
	Column
	Offsets []int64
	Lengths []int64
	Child   ColumnVector
}

func (*ListColumn) Kind() VectorKind { return VectorList }

// MapColumn holds per-row offset/length pairs into parallel key and value
// child vectors.
type MapColumn struct {
	Column
	Offsets []int64
	Lengths []int64
	Keys    ColumnVector
	Values  ColumnVector
}

func (*MapColumn) Kind() VectorKind { return VectorMap }

// UnionColumn holds a per-row tag selecting the active branch vector.
type UnionColumn struct {
	Column
	Tags   []int
	Fields []ColumnVector
}

func (*UnionColumn) Kind() VectorKind { return VectorUnion }

// Batch is a fixed group of rows stored as one vector per projected column.
// Batches are transient; the reader may reuse them after the next pull.
type Batch struct {
	Size int
	Cols []ColumnVector
}
