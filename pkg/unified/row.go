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

package unified

// Row is an ordered sequence of nullable dynamically-typed values, one per
// schema field. Rows are produced fresh per source row; the producer keeps no
// reference once a row is handed to the consumer.
type Row struct {
	// TableID is an opaque identifier for the source the row came from.
	TableID string
	// Values holds one value per schema field, nil for null cells.
	Values []any
}

// NewRow builds a row over the given field values.
func NewRow(values []any) *Row {
	return &Row{Values: values}
}

// NumFields returns the number of field values in the row.
func (r *Row) NumFields() int { return len(r.Values) }

// Field returns the value at position i, nil for null cells.
func (r *Row) Field(i int) any { return r.Values[i] }
