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
	"bytes"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/cardinalhq/orcbridge/pkg/orcfile"
	"github.com/cardinalhq/orcbridge/pkg/unified"
)

// UnionValue is a decoded tagged-union cell: the active branch index and its
// decoded value. The unified type system has no union variant, so union
// cells surface as this pair.
type UnionValue struct {
	Tag   int
	Value any
}

// decoder turns column-vector cells into unified values. One decoder serves
// one file session; it carries the resolved charset and opt-in behavior.
type decoder struct {
	path       string
	charset    encoding.Encoding
	imageSniff bool
}

var (
	jpegSignature = []byte{0xFF, 0xD8}
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// effRow maps a logical row index to the physical one: repeating vectors
// store a single value at row 0.
func effRow(vec orcfile.ColumnVector, row int) int {
	if vec.IsRepeating() {
		return 0
	}
	return row
}

// decodeCell decodes one cell. A nil vector or a set null flag yields nil
// without touching backing storage. dt is the resolved unified type for the
// column, nil when no coercion applies.
func (d *decoder) decodeCell(vec orcfile.ColumnVector, td *orcfile.TypeDescription, dt unified.DataType, row int) (any, error) {
	if vec == nil {
		return nil, nil
	}
	if vec.IsNull(row) {
		return nil, nil
	}
	switch v := vec.(type) {
	case *orcfile.LongColumn:
		return d.decodeLong(v, td, dt, row), nil
	case *orcfile.DoubleColumn:
		return d.decodeDouble(v, td, dt, row), nil
	case *orcfile.BytesColumn:
		return d.decodeBytes(v, td, dt, row)
	case *orcfile.DecimalColumn:
		return d.decodeDecimal(v, dt, row), nil
	case *orcfile.TimestampColumn:
		return d.decodeTimestamp(v, td, dt, row), nil
	case *orcfile.StructColumn:
		return d.decodeStruct(v, td, dt, row)
	case *orcfile.ListColumn:
		return d.decodeList(v, td, dt, row)
	case *orcfile.MapColumn:
		return d.decodeMap(v, td, dt, row)
	case *orcfile.UnionColumn:
		return d.decodeUnion(v, td, row)
	default:
		return nil, newError(CodeUnsupportedDataType, d.path,
			"column vector kind [%s] is not supported", vec.Kind())
	}
}

// decodeLong narrows the shared int64 store per native category, then
// coerces to string when the resolved type asks for it.
func (d *decoder) decodeLong(v *orcfile.LongColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) any {
	val := v.Vector[effRow(v, row)]
	var out any = val
	switch td.Category {
	case orcfile.CategoryInt:
		out = int32(val)
	case orcfile.CategoryBoolean:
		out = val == 1
	case orcfile.CategoryDate:
		out = epochDay(val)
	case orcfile.CategoryByte:
		out = int8(val)
	case orcfile.CategoryShort:
		out = int16(val)
	}
	if wantsString(dt) {
		return stringify(out)
	}
	return out
}

func (d *decoder) decodeDouble(v *orcfile.DoubleColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) any {
	val := v.Vector[effRow(v, row)]
	var out any = val
	if td.Category == orcfile.CategoryFloat {
		out = float32(val)
	}
	if wantsString(dt) {
		return stringify(out)
	}
	return out
}

// decodeBytes decodes a byte-string cell through the configured charset. A
// binary-category cell stays raw bytes unless the resolved type is String.
// With the image sniff enabled, JPEG/PNG-signature cells short-circuit
// charset decoding and come back raw.
func (d *decoder) decodeBytes(v *orcfile.BytesColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) (any, error) {
	raw := v.Vector[effRow(v, row)]
	if d.imageSniff && hasImageSignature(raw) {
		return copyBytes(raw), nil
	}
	if td.Category == orcfile.CategoryBinary {
		if wantsString(dt) {
			return d.decodeText(raw)
		}
		return copyBytes(raw), nil
	}
	return d.decodeText(raw)
}

func (d *decoder) decodeText(raw []byte) (string, error) {
	if d.charset == nil {
		return string(raw), nil
	}
	decoded, err := d.charset.NewDecoder().Bytes(raw)
	if err != nil {
		return "", wrapError(CodeIllegalArgument, d.path, err, "failed to decode text cell")
	}
	return string(decoded), nil
}

func (d *decoder) decodeDecimal(v *orcfile.DecimalColumn, dt unified.DataType, row int) any {
	val := v.Vector[effRow(v, row)]
	if wantsString(dt) {
		return val.String()
	}
	return val
}

// decodeTimestamp combines the millisecond epoch with the nanosecond field
// (which replaces the sub-second part entirely), then narrows per the
// resolved native/target type.
func (d *decoder) decodeTimestamp(v *orcfile.TimestampColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) any {
	r := effRow(v, row)
	t := composeTimestamp(v.Millis[r], v.Nanos[r])
	var out any
	switch {
	case td.Category == orcfile.CategoryDate:
		out = civil.DateOf(t)
	case dt != nil && dt.Kind() == unified.KindTime:
		out = civil.TimeOf(t)
	default:
		out = civil.DateTimeOf(t)
	}
	if wantsString(dt) {
		return stringify(out)
	}
	return out
}

func (d *decoder) decodeStruct(v *orcfile.StructColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) (any, error) {
	if len(v.Fields) != len(td.Children) {
		return nil, newError(CodeIllegalArgument, d.path,
			"struct column has %d field vectors but %d declared fields (row %d)",
			len(v.Fields), len(td.Children), row)
	}
	rowType, _ := dt.(*unified.RowType)
	values := make([]any, len(v.Fields))
	for i, fieldVec := range v.Fields {
		var fieldType unified.DataType
		if rowType != nil && i < rowType.NumFields() {
			fieldType = rowType.FieldType(i)
		}
		val, err := d.decodeCell(fieldVec, td.Children[i], fieldType, row)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return unified.NewRow(values), nil
}

// listChildKinds is the closed set of physical child kinds supported inside
// list columns.
var listChildKinds = map[orcfile.VectorKind]bool{
	orcfile.VectorLong:      true,
	orcfile.VectorDouble:    true,
	orcfile.VectorBytes:     true,
	orcfile.VectorDecimal:   true,
	orcfile.VectorTimestamp: true,
}

func (d *decoder) decodeList(v *orcfile.ListColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) (any, error) {
	if len(td.Children) != 1 {
		return nil, newError(CodeIllegalArgument, d.path,
			"list type declares %d child types, want 1 (row %d)", len(td.Children), row)
	}
	if v.Child == nil || !listChildKinds[v.Child.Kind()] {
		return nil, newError(CodeUnsupportedDataType, d.path,
			"[%s] is not supported for list column vectors", vectorKindName(v.Child))
	}
	r := effRow(v, row)
	offset := int(v.Offsets[r])
	length := int(v.Lengths[r])
	childTD := td.Children[0]
	var elemTarget unified.DataType
	if at, ok := dt.(unified.ArrayType); ok {
		elemTarget = at.Element
	}
	values := make([]any, length)
	for i := 0; i < length; i++ {
		val, err := d.decodeCell(v.Child, childTD, elemTarget, offset+i)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

// mapChildKinds is the closed set of physical kinds allowed for map keys and
// values; each side is checked independently.
var mapChildKinds = map[orcfile.VectorKind]bool{
	orcfile.VectorBytes:     true,
	orcfile.VectorLong:      true,
	orcfile.VectorDouble:    true,
	orcfile.VectorDecimal:   true,
	orcfile.VectorTimestamp: true,
}

func (d *decoder) decodeMap(v *orcfile.MapColumn, td *orcfile.TypeDescription, dt unified.DataType, row int) (any, error) {
	if len(td.Children) != 2 {
		return nil, newError(CodeIllegalArgument, d.path,
			"map type declares %d child types, want 2 (row %d)", len(td.Children), row)
	}
	if v.Keys == nil || v.Values == nil ||
		!mapChildKinds[v.Keys.Kind()] || !mapChildKinds[v.Values.Kind()] {
		return nil, newError(CodeUnsupportedDataType, d.path,
			"key [%s] or value [%s] is not supported for map column vectors",
			vectorKindName(v.Keys), vectorKindName(v.Values))
	}
	r := effRow(v, row)
	offset := int(v.Offsets[r])
	length := int(v.Lengths[r])
	keyTD, valueTD := td.Children[0], td.Children[1]
	var keyTarget, valueTarget unified.DataType
	if mt, ok := dt.(unified.MapType); ok {
		keyTarget = mt.Key
		valueTarget = mt.Value
	}
	m := make(map[any]any, length)
	for i := 0; i < length; i++ {
		key, err := d.decodeCell(v.Keys, keyTD, keyTarget, offset+i)
		if err != nil {
			return nil, err
		}
		value, err := d.decodeCell(v.Values, valueTD, valueTarget, offset+i)
		if err != nil {
			return nil, err
		}
		// Byte-slice keys are not hashable.
		if kb, ok := key.([]byte); ok {
			key = string(kb)
		}
		// Later key wins on duplicates; the source format makes no
		// uniqueness guarantee and neither do we.
		m[key] = value
	}
	return m, nil
}

func (d *decoder) decodeUnion(v *orcfile.UnionColumn, td *orcfile.TypeDescription, row int) (any, error) {
	tag := v.Tags[effRow(v, row)]
	if tag < 0 || tag >= len(td.Children) {
		return nil, newError(CodeIllegalArgument, d.path,
			"union tag %d out of range for %d union types (row %d)", tag, len(td.Children), row)
	}
	if tag >= len(v.Fields) {
		return nil, newError(CodeIllegalArgument, d.path,
			"union tag %d out of range for %d union column vectors (row %d)", tag, len(v.Fields), row)
	}
	value, err := d.decodeCell(v.Fields[tag], td.Children[tag], nil, row)
	if err != nil {
		return nil, err
	}
	return UnionValue{Tag: tag, Value: value}, nil
}

func wantsString(dt unified.DataType) bool {
	return dt != nil && dt.Kind() == unified.KindString
}

func vectorKindName(vec orcfile.ColumnVector) string {
	if vec == nil {
		return "nil"
	}
	return vec.Kind().String()
}

func hasImageSignature(raw []byte) bool {
	return bytes.HasPrefix(raw, jpegSignature) || bytes.HasPrefix(raw, pngSignature)
}

func copyBytes(raw []byte) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// epochDay converts a day count since 1970-01-01 to a civil date.
func epochDay(days int64) civil.Date {
	return civil.DateOf(time.Unix(days*86400, 0).UTC())
}

// composeTimestamp floors millis to whole seconds and applies nanos as the
// full sub-second part.
func composeTimestamp(millis int64, nanos int32) time.Time {
	sec := millis / 1000
	if millis%1000 != 0 && millis < 0 {
		sec--
	}
	return time.Unix(sec, int64(nanos)).UTC()
}

// stringify renders a decoded leaf value in its canonical string form.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []byte:
		return string(val)
	case decimal.Decimal:
		return val.String()
	case civil.Date:
		return val.String()
	case civil.Time:
		return val.String()
	case civil.DateTime:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
