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
	"github.com/cardinalhq/orcbridge/pkg/orcfile"
	"github.com/cardinalhq/orcbridge/pkg/unified"
)

// finalType picks between the file-inferred type and a caller target: the
// target wins only when the file type is convertible to it, otherwise the
// file type stands. Pure and deterministic.
func finalType(fileType, configType unified.DataType) unified.DataType {
	if configType == nil {
		return fileType
	}
	if unified.CanConvert(fileType, configType) {
		return configType
	}
	return fileType
}

// arrayElementKinds is the closed set of element kinds the unified model
// supports for arrays.
var arrayElementKinds = map[unified.Kind]bool{
	unified.KindString:  true,
	unified.KindBoolean: true,
	unified.KindByte:    true,
	unified.KindShort:   true,
	unified.KindInt:     true,
	unified.KindLong:    true,
	unified.KindFloat:   true,
	unified.KindDouble:  true,
}

// mapORCType translates one native type node into a unified type, optionally
// coerced toward the caller's target type.
func mapORCType(td *orcfile.TypeDescription, target unified.DataType) (unified.DataType, error) {
	switch td.Category {
	case orcfile.CategoryBoolean:
		return finalType(unified.BooleanType, target), nil
	case orcfile.CategoryByte:
		return finalType(unified.ByteType, target), nil
	case orcfile.CategoryShort:
		return finalType(unified.ShortType, target), nil
	case orcfile.CategoryInt:
		return finalType(unified.IntType, target), nil
	case orcfile.CategoryLong:
		return finalType(unified.LongType, target), nil
	case orcfile.CategoryFloat:
		return finalType(unified.FloatType, target), nil
	case orcfile.CategoryDouble:
		return finalType(unified.DoubleType, target), nil
	case orcfile.CategoryBinary:
		return finalType(unified.BytesType, target), nil
	case orcfile.CategoryString, orcfile.CategoryVarchar, orcfile.CategoryChar:
		return finalType(unified.StringType, target), nil
	case orcfile.CategoryDate:
		return finalType(unified.DateType, target), nil
	case orcfile.CategoryTimestamp:
		// Narrowing a timestamp to a time of day must be requested
		// explicitly by the caller; it is never inferred.
		if target != nil && target.Kind() == unified.KindTime {
			return unified.TimeType, nil
		}
		return finalType(unified.DateTimeType, target), nil
	case orcfile.CategoryDecimal:
		return finalType(unified.DecimalType{Precision: td.Precision, Scale: td.Scale}, target), nil
	case orcfile.CategoryList:
		return mapListType(td, target)
	case orcfile.CategoryMap:
		return mapMapType(td, target)
	case orcfile.CategoryStruct:
		return mapStructType(td, target)
	default:
		return nil, newError(CodeUnsupportedDataType, "",
			"orc type [%s] is not supported", td.Category)
	}
}

func mapListType(td *orcfile.TypeDescription, target unified.DataType) (unified.DataType, error) {
	child := td.Children[0]
	var elemTarget unified.DataType
	if at, ok := target.(unified.ArrayType); ok {
		elemTarget = at.Element
	}
	element, err := mapORCType(child, elemTarget)
	if err != nil {
		return nil, err
	}
	if !arrayElementKinds[element.Kind()] {
		return nil, newError(CodeUnsupportedDataType, "",
			"array element type [%s] is not supported", element)
	}
	return unified.ArrayType{Element: element}, nil
}

func mapMapType(td *orcfile.TypeDescription, target unified.DataType) (unified.DataType, error) {
	var keyTarget, valueTarget unified.DataType
	if mt, ok := target.(unified.MapType); ok {
		keyTarget = mt.Key
		valueTarget = mt.Value
	}
	key, err := mapORCType(td.Children[0], keyTarget)
	if err != nil {
		return nil, err
	}
	value, err := mapORCType(td.Children[1], valueTarget)
	if err != nil {
		return nil, err
	}
	return unified.MapType{Key: key, Value: value}, nil
}

func mapStructType(td *orcfile.TypeDescription, target unified.DataType) (unified.DataType, error) {
	rowTarget, _ := target.(*unified.RowType)
	types := make([]unified.DataType, len(td.Children))
	for i, child := range td.Children {
		var fieldTarget unified.DataType
		if rowTarget != nil && i < rowTarget.NumFields() {
			fieldTarget = rowTarget.FieldType(i)
		}
		ft, err := mapORCType(child, fieldTarget)
		if err != nil {
			return nil, err
		}
		types[i] = ft
	}
	rt, err := unified.NewRowType(td.FieldNames, types)
	if err != nil {
		return nil, wrapError(CodeIllegalArgument, "", err, "invalid struct type")
	}
	return rt, nil
}
