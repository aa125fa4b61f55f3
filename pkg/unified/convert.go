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

// numericRank orders the numeric kinds by width; a conversion is a widening
// when the target rank is strictly greater.
var numericRank = map[Kind]int{
	KindByte:   1,
	KindShort:  2,
	KindInt:    3,
	KindLong:   4,
	KindFloat:  5,
	KindDouble: 6,
}

func isLeafKind(k Kind) bool {
	switch k {
	case KindArray, KindMap, KindRow:
		return false
	default:
		return true
	}
}

// CanConvert reports whether a value of type from may be converted to type to
// without caller approval: identical types, numeric widening, or any leaf
// type to String. Composite types convert only to themselves. Pure and
// deterministic for identical inputs.
func CanConvert(from, to DataType) bool {
	if from == nil || to == nil {
		return false
	}
	if Equal(from, to) {
		return true
	}
	if to.Kind() == KindString && isLeafKind(from.Kind()) {
		return true
	}
	fromRank, fromNumeric := numericRank[from.Kind()]
	toRank, toNumeric := numericRank[to.Kind()]
	return fromNumeric && toNumeric && toRank > fromRank
}
