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

// Package orcfile models the ORC file-native side of the bridge: the
// file-declared schema tree, the vectorized column batches produced by a
// columnar reader, the reader collaborator interface itself, and format
// detection over raw bytes.
package orcfile

import "fmt"

// Category is an ORC type category as declared in the file schema.
type Category int

const (
	CategoryBoolean Category = iota
	CategoryByte
	CategoryShort
	CategoryInt
	CategoryLong
	CategoryFloat
	CategoryDouble
	CategoryString
	CategoryDate
	CategoryTimestamp
	CategoryBinary
	CategoryDecimal
	CategoryVarchar
	CategoryChar
	CategoryList
	CategoryMap
	CategoryStruct
	CategoryUnion
)

var categoryNames = map[Category]string{
	CategoryBoolean:   "BOOLEAN",
	CategoryByte:      "BYTE",
	CategoryShort:     "SHORT",
	CategoryInt:       "INT",
	CategoryLong:      "LONG",
	CategoryFloat:     "FLOAT",
	CategoryDouble:    "DOUBLE",
	CategoryString:    "STRING",
	CategoryDate:      "DATE",
	CategoryTimestamp: "TIMESTAMP",
	CategoryBinary:    "BINARY",
	CategoryDecimal:   "DECIMAL",
	CategoryVarchar:   "VARCHAR",
	CategoryChar:      "CHAR",
	CategoryList:      "LIST",
	CategoryMap:       "MAP",
	CategoryStruct:    "STRUCT",
	CategoryUnion:     "UNION",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CATEGORY(%d)", int(c))
}

// TypeDescription is one node of the file-declared schema tree. It is
// supplied by the columnar reader and treated as read-only.
type TypeDescription struct {
	Category Category
	// Children holds the child types: one for list, key then value for map,
	// a field per child for struct, a branch per child for union.
	Children []*TypeDescription
	// FieldNames names struct children, parallel to Children.
	FieldNames []string
	// Precision and Scale are set for decimal only.
	Precision int
	Scale     int
}

// NewPrimitive returns a leaf type node for the given category.
func NewPrimitive(c Category) *TypeDescription {
	return &TypeDescription{Category: c}
}

// NewDecimal returns a decimal type node with exact precision and scale.
func NewDecimal(precision, scale int) *TypeDescription {
	return &TypeDescription{Category: CategoryDecimal, Precision: precision, Scale: scale}
}

// NewList returns a list type node over the given element type.
func NewList(element *TypeDescription) *TypeDescription {
	return &TypeDescription{Category: CategoryList, Children: []*TypeDescription{element}}
}

// NewMap returns a map type node over the given key and value types.
func NewMap(key, value *TypeDescription) *TypeDescription {
	return &TypeDescription{Category: CategoryMap, Children: []*TypeDescription{key, value}}
}

// NewStruct returns a struct type node; names and children are parallel.
func NewStruct(names []string, children []*TypeDescription) *TypeDescription {
	return &TypeDescription{Category: CategoryStruct, Children: children, FieldNames: names}
}

// NewUnion returns a union type node over the given branch types.
func NewUnion(branches ...*TypeDescription) *TypeDescription {
	return &TypeDescription{Category: CategoryUnion, Children: branches}
}

// FieldIndex returns the position of the named struct field, or -1.
func (td *TypeDescription) FieldIndex(name string) int {
	for i, n := range td.FieldNames {
		if n == name {
			return i
		}
	}
	return -1
}
