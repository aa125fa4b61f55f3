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
	"errors"
	"fmt"
)

// Code classifies a bridge failure. All codes abort the current file's read;
// none are retried internally.
type Code int

const (
	// CodeFileTypeInvalid means the sniffer found no recognizable marker, or
	// failed with an I/O error while sniffing.
	CodeFileTypeInvalid Code = iota + 1
	// CodeSchemaColumnMissing means a selected column is absent from the
	// file's native field list.
	CodeSchemaColumnMissing
	// CodeUnsupportedDataType means a native category has no unified mapping,
	// or a map/list child category is outside the supported set.
	CodeUnsupportedDataType
	// CodeIllegalArgument means a malformed union tag or column-vector
	// pairing was encountered while decoding.
	CodeIllegalArgument
	// CodeReaderOperationFailed wraps a low-level reader construction or
	// pull failure.
	CodeReaderOperationFailed
)

var codeNames = map[Code]string{
	CodeFileTypeInvalid:       "FILE_TYPE_INVALID",
	CodeSchemaColumnMissing:   "SCHEMA_COLUMN_MISSING",
	CodeUnsupportedDataType:   "UNSUPPORTED_DATA_TYPE",
	CodeIllegalArgument:       "ILLEGAL_ARGUMENT",
	CodeReaderOperationFailed: "READER_OPERATION_FAILED",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CODE(%d)", int(c))
}

// Error is the failure surface of the bridge. It always names the failing
// file and the specific offending value or category.
type Error struct {
	Code Code
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := e.Code.String() + ": " + e.Msg
	if e.Path != "" {
		s += fmt.Sprintf(" (file %s)", e.Path)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the Code carried by err, or 0 if err is not a bridge error.
func CodeOf(err error) Code {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return 0
}

func newError(code Code, path, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, path string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Msg: fmt.Sprintf(format, args...), Err: cause}
}
