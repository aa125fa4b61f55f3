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

package orcconv

import (
	"strings"

	"github.com/cardinalhq/orcbridge/pkg/unified"
)

// ExtractFunc derives one partition value from a file path. The bool result
// reports whether the value was present.
type ExtractFunc func(path string) (string, bool)

// PartitionDef declares one partition column and how its value is extracted
// from a file path.
type PartitionDef struct {
	Name    string
	Extract ExtractFunc
}

// HivePartition declares a partition extracted from a hive-style
// "name=value" path segment.
func HivePartition(name string) PartitionDef {
	prefix := name + "="
	return PartitionDef{
		Name: name,
		Extract: func(path string) (string, bool) {
			for _, seg := range strings.Split(path, "/") {
				if rest, ok := strings.CutPrefix(seg, prefix); ok {
					return rest, true
				}
			}
			return "", false
		},
	}
}

// StaticPartition declares a partition with a constant value, independent of
// the path.
func StaticPartition(name, value string) PartitionDef {
	return PartitionDef{
		Name:    name,
		Extract: func(string) (string, bool) { return value, true },
	}
}

// PartitionMap is the ordered name-to-value mapping for one file, constant
// for the file's lifetime.
type PartitionMap struct {
	names  []string
	values []string
}

// Len returns the number of partition columns.
func (p *PartitionMap) Len() int { return len(p.names) }

// Name returns the partition column name at position i.
func (p *PartitionMap) Name(i int) string { return p.names[i] }

// Value returns the partition value at position i.
func (p *PartitionMap) Value(i int) string { return p.values[i] }

// parsePartitions evaluates every definition against the path, in
// declaration order.
func parsePartitions(path string, defs []PartitionDef) (*PartitionMap, error) {
	pm := &PartitionMap{
		names:  make([]string, 0, len(defs)),
		values: make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		value, ok := def.Extract(path)
		if !ok {
			return nil, newError(CodeIllegalArgument, path,
				"partition column [%s] is not present in path", def.Name)
		}
		pm.names = append(pm.names, def.Name)
		pm.values = append(pm.values, value)
	}
	return pm, nil
}

// appendPartitionFields extends a schema with one trailing String field per
// partition column, in declaration order.
func appendPartitionFields(schema *unified.RowType, pm *PartitionMap) (*unified.RowType, error) {
	if pm.Len() == 0 {
		return schema, nil
	}
	types := make([]unified.DataType, pm.Len())
	for i := range types {
		types[i] = unified.StringType
	}
	return schema.AppendFields(pm.names, types)
}
