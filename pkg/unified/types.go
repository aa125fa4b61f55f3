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

// Package unified defines the caller-facing type system that file-native
// column types are normalized into, along with the positional Row value
// emitted by readers.
package unified

import (
	"fmt"
	"strings"
)

// Kind identifies a unified data type variant.
type Kind int

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindDate
	KindTime
	KindDateTime
	KindDecimal
	KindArray
	KindMap
	KindRow
)

var kindNames = map[Kind]string{
	KindBoolean:  "BOOLEAN",
	KindByte:     "TINYINT",
	KindShort:    "SMALLINT",
	KindInt:      "INT",
	KindLong:     "BIGINT",
	KindFloat:    "FLOAT",
	KindDouble:   "DOUBLE",
	KindString:   "STRING",
	KindBytes:    "BYTES",
	KindDate:     "DATE",
	KindTime:     "TIME",
	KindDateTime: "TIMESTAMP",
	KindDecimal:  "DECIMAL",
	KindArray:    "ARRAY",
	KindMap:      "MAP",
	KindRow:      "ROW",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// DataType is a unified type. The set of implementations is closed; values
// are immutable once constructed.
type DataType interface {
	Kind() Kind
	String() string

	dataType()
}

// BasicType is a parameterless leaf type.
type BasicType struct {
	kind Kind
}

var (
	BooleanType  = BasicType{KindBoolean}
	ByteType     = BasicType{KindByte}
	ShortType    = BasicType{KindShort}
	IntType      = BasicType{KindInt}
	LongType     = BasicType{KindLong}
	FloatType    = BasicType{KindFloat}
	DoubleType   = BasicType{KindDouble}
	StringType   = BasicType{KindString}
	BytesType    = BasicType{KindBytes}
	DateType     = BasicType{KindDate}
	TimeType     = BasicType{KindTime}
	DateTimeType = BasicType{KindDateTime}
)

func (t BasicType) Kind() Kind     { return t.kind }
func (t BasicType) String() string { return t.kind.String() }
func (BasicType) dataType()        {}

// DecimalType carries exact precision and scale.
type DecimalType struct {
	Precision int
	Scale     int
}

func (DecimalType) Kind() Kind { return KindDecimal }
func (t DecimalType) String() string {
	return fmt.Sprintf("DECIMAL(%d, %d)", t.Precision, t.Scale)
}
func (DecimalType) dataType() {}

// ArrayType is a homogeneous sequence of Element values.
type ArrayType struct {
	Element DataType
}

func (ArrayType) Kind() Kind       { return KindArray }
func (t ArrayType) String() string { return fmt.Sprintf("ARRAY<%s>", t.Element) }
func (ArrayType) dataType()        {}

// MapType is a mapping from Key to Value.
type MapType struct {
	Key   DataType
	Value DataType
}

func (MapType) Kind() Kind       { return KindMap }
func (t MapType) String() string { return fmt.Sprintf("MAP<%s, %s>", t.Key, t.Value) }
func (MapType) dataType()        {}

// RowType is an ordered, named sequence of field types. It doubles as the
// schema of an emitted Row; field order defines row positions.
type RowType struct {
	names []string
	types []DataType
}

// NewRowType builds a RowType from parallel name and type slices. Names must
// be non-empty and unique within the row.
func NewRowType(names []string, types []DataType) (*RowType, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("row type has %d names but %d types", len(names), len(types))
	}
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("row type field %d has an empty name", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("row type field name [%s] is duplicated", name)
		}
		seen[name] = struct{}{}
		if types[i] == nil {
			return nil, fmt.Errorf("row type field [%s] has a nil type", name)
		}
	}
	rt := &RowType{
		names: append([]string(nil), names...),
		types: append([]DataType(nil), types...),
	}
	return rt, nil
}

func (*RowType) Kind() Kind { return KindRow }

func (t *RowType) String() string {
	var sb strings.Builder
	sb.WriteString("ROW<")
	for i, name := range t.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(t.types[i].String())
	}
	sb.WriteString(">")
	return sb.String()
}

func (*RowType) dataType() {}

// NumFields returns the number of fields.
func (t *RowType) NumFields() int { return len(t.names) }

// FieldName returns the name of field i.
func (t *RowType) FieldName(i int) string { return t.names[i] }

// FieldType returns the type of field i.
func (t *RowType) FieldType(i int) DataType { return t.types[i] }

// FieldNames returns a copy of the ordered field names.
func (t *RowType) FieldNames() []string {
	return append([]string(nil), t.names...)
}

// IndexOf returns the position of the named field, or -1.
func (t *RowType) IndexOf(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

// AppendFields returns a new RowType with the given fields appended after the
// receiver's fields. The receiver is not modified.
func (t *RowType) AppendFields(names []string, types []DataType) (*RowType, error) {
	return NewRowType(
		append(t.FieldNames(), names...),
		append(append([]DataType(nil), t.types...), types...),
	)
}

// Equal reports whether two unified types are structurally identical,
// including decimal precision/scale and row field names.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case BasicType:
		return true
	case DecimalType:
		bt := b.(DecimalType)
		return at.Precision == bt.Precision && at.Scale == bt.Scale
	case ArrayType:
		return Equal(at.Element, b.(ArrayType).Element)
	case MapType:
		bt := b.(MapType)
		return Equal(at.Key, bt.Key) && Equal(at.Value, bt.Value)
	case *RowType:
		bt := b.(*RowType)
		if len(at.names) != len(bt.names) {
			return false
		}
		for i := range at.names {
			if at.names[i] != bt.names[i] || !Equal(at.types[i], bt.types[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
