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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/orcbridge/pkg/orcfile"
	"github.com/cardinalhq/orcbridge/pkg/unified"
)

func TestMapORCType_Primitives(t *testing.T) {
	tests := []struct {
		category orcfile.Category
		want     unified.DataType
	}{
		{orcfile.CategoryBoolean, unified.BooleanType},
		{orcfile.CategoryByte, unified.ByteType},
		{orcfile.CategoryShort, unified.ShortType},
		{orcfile.CategoryInt, unified.IntType},
		{orcfile.CategoryLong, unified.LongType},
		{orcfile.CategoryFloat, unified.FloatType},
		{orcfile.CategoryDouble, unified.DoubleType},
		{orcfile.CategoryBinary, unified.BytesType},
		{orcfile.CategoryString, unified.StringType},
		{orcfile.CategoryVarchar, unified.StringType},
		{orcfile.CategoryChar, unified.StringType},
		{orcfile.CategoryDate, unified.DateType},
		{orcfile.CategoryTimestamp, unified.DateTimeType},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			got, err := mapORCType(orcfile.NewPrimitive(tt.category), nil)
			require.NoError(t, err)
			assert.True(t, unified.Equal(tt.want, got), "got %s", got)
		})
	}
}

func TestMapORCType_DecimalCarriesPrecisionAndScale(t *testing.T) {
	got, err := mapORCType(orcfile.NewDecimal(38, 10), nil)
	require.NoError(t, err)
	assert.Equal(t, unified.DecimalType{Precision: 38, Scale: 10}, got)
}

func TestMapORCType_TimestampToTimeOnlyWhenRequested(t *testing.T) {
	ts := orcfile.NewPrimitive(orcfile.CategoryTimestamp)

	got, err := mapORCType(ts, unified.TimeType)
	require.NoError(t, err)
	assert.Equal(t, unified.TimeType, got)

	// Never inferred without an explicit Time target.
	got, err = mapORCType(ts, nil)
	require.NoError(t, err)
	assert.Equal(t, unified.DateTimeType, got)
}

func TestMapORCType_ListHonorsElementTarget(t *testing.T) {
	list := orcfile.NewList(orcfile.NewPrimitive(orcfile.CategoryInt))

	got, err := mapORCType(list, unified.ArrayType{Element: unified.StringType})
	require.NoError(t, err)
	assert.Equal(t, unified.ArrayType{Element: unified.StringType}, got)

	got, err = mapORCType(list, nil)
	require.NoError(t, err)
	assert.Equal(t, unified.ArrayType{Element: unified.IntType}, got)
}

func TestMapORCType_ListOfUnsupportedElement(t *testing.T) {
	inner := orcfile.NewStruct([]string{"a"}, []*orcfile.TypeDescription{
		orcfile.NewPrimitive(orcfile.CategoryInt),
	})
	_, err := mapORCType(orcfile.NewList(inner), nil)
	assert.Equal(t, CodeUnsupportedDataType, CodeOf(err))

	_, err = mapORCType(orcfile.NewList(orcfile.NewDecimal(10, 2)), nil)
	assert.Equal(t, CodeUnsupportedDataType, CodeOf(err))
}

func TestMapORCType_Map(t *testing.T) {
	m := orcfile.NewMap(
		orcfile.NewPrimitive(orcfile.CategoryString),
		orcfile.NewPrimitive(orcfile.CategoryLong),
	)

	got, err := mapORCType(m, nil)
	require.NoError(t, err)
	assert.Equal(t, unified.MapType{Key: unified.StringType, Value: unified.LongType}, got)

	got, err = mapORCType(m, unified.MapType{Key: unified.StringType, Value: unified.StringType})
	require.NoError(t, err)
	assert.Equal(t, unified.MapType{Key: unified.StringType, Value: unified.StringType}, got)
}

func TestMapORCType_StructPairsPositionally(t *testing.T) {
	st := orcfile.NewStruct(
		[]string{"id", "score"},
		[]*orcfile.TypeDescription{
			orcfile.NewPrimitive(orcfile.CategoryInt),
			orcfile.NewPrimitive(orcfile.CategoryFloat),
		},
	)
	target, err := unified.NewRowType(
		[]string{"id", "score"},
		[]unified.DataType{unified.LongType, unified.StringType},
	)
	require.NoError(t, err)

	got, err := mapORCType(st, target)
	require.NoError(t, err)
	rt := got.(*unified.RowType)
	assert.Equal(t, unified.LongType, rt.FieldType(0), "int widens to the long target")
	assert.Equal(t, unified.StringType, rt.FieldType(1), "float coerces to the string target")
}

func TestMapORCType_UnknownCategory(t *testing.T) {
	_, err := mapORCType(orcfile.NewPrimitive(orcfile.CategoryUnion), nil)
	assert.Equal(t, CodeUnsupportedDataType, CodeOf(err))
}

func TestFinalTypeFallsBack(t *testing.T) {
	// Non-convertible target falls back to the file type.
	assert.Equal(t, unified.LongType, finalType(unified.LongType, unified.IntType))
	// Convertible target wins.
	assert.Equal(t, unified.StringType, finalType(unified.LongType, unified.StringType))
	// No target keeps the file type.
	assert.Equal(t, unified.LongType, finalType(unified.LongType, nil))
}
