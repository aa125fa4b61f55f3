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
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/cardinalhq/orcbridge/pkg/orcfile"
	"github.com/cardinalhq/orcbridge/pkg/unified"
)

// Source reads ORC files into unified rows. One Source may serve many files;
// all per-file state lives in a session created per call, so independent
// files can be read concurrently through the same Source.
type Source struct {
	fsys   afero.Fs
	open   orcfile.OpenFunc
	opts   ReaderOptions
	target *unified.RowType
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithReaderOptions replaces the default reader options.
func WithReaderOptions(opts ReaderOptions) SourceOption {
	return func(s *Source) { s.opts = opts }
}

// WithTargetSchema declares the caller's target schema; file types are
// coerced toward it field by field where convertible.
func WithTargetSchema(rt *unified.RowType) SourceOption {
	return func(s *Source) { s.target = rt }
}

// NewSource builds a Source over a storage filesystem and a columnar-reader
// open function.
func NewSource(fsys afero.Fs, open orcfile.OpenFunc, opts ...SourceOption) (*Source, error) {
	s := &Source{
		fsys: fsys,
		open: open,
		opts: DefaultReaderOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DetectFormat reports whether the file at path is recognizably ORC.
func (s *Source) DetectFormat(path string) (bool, error) {
	return orcfile.DetectFormat(s.fsys, path)
}

// InferSchema computes the unified schema for the file at path: the file's
// native schema reconciled with the target schema, extended with partition
// fields when partition merging is enabled. Idempotent; identical inputs
// yield identical schemas.
func (s *Source) InferSchema(ctx context.Context, path string) (*unified.RowType, error) {
	sess, err := s.newSession(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = sess.reader.Close()
	}()
	return sess.schema, nil
}

// Read materializes every row of the file at path into the sink, tagged with
// tableID, in file order. The underlying reader is released on every exit
// path. Decode errors propagate immediately; no partial row is emitted.
func (s *Source) Read(ctx context.Context, path, tableID string, sink Sink) error {
	rr, err := s.NewRowReader(ctx, path, tableID)
	if err != nil {
		return err
	}
	defer func() {
		_ = rr.Close()
	}()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := rr.GetRow()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sink.Collect(row); err != nil {
			return wrapError(CodeReaderOperationFailed, path, err, "sink rejected row")
		}
	}
}

// NewRowReader opens a pull-style reader over the file at path. The caller
// owns the returned reader and must Close it; ceasing to pull stops all
// further I/O.
func (s *Source) NewRowReader(ctx context.Context, path, tableID string) (*RowReader, error) {
	ok, err := s.DetectFormat(path)
	if err != nil {
		return nil, wrapError(CodeFileTypeInvalid, path, err, "failed to check file type")
	}
	if !ok {
		return nil, newError(CodeFileTypeInvalid, path,
			"this file is not an orc file, please check its format")
	}

	sess, err := s.newSession(ctx, path)
	if err != nil {
		return nil, err
	}
	cursor, err := sess.reader.Project(sess.columns)
	if err != nil {
		_ = sess.reader.Close()
		return nil, wrapError(CodeReaderOperationFailed, path, err, "failed to project schema")
	}
	return &RowReader{
		ctx:     ctx,
		sess:    sess,
		cursor:  cursor,
		tableID: tableID,
	}, nil
}

// session is the per-file state: the open reader, cached schemas, resolved
// column types and the decoder. Nothing in it is shared across files.
type session struct {
	path   string
	reader orcfile.Reader
	dec    *decoder

	// columns are the projected top-level field names, in order; colTypes
	// and colTargets are parallel to them.
	columns    []string
	colTypes   []*orcfile.TypeDescription
	colTargets []unified.DataType

	// schema is the emitted unified schema, partition fields included.
	schema *unified.RowType
	parts  *PartitionMap
}

// newSession opens the columnar reader for path and computes the effective
// schema once. The returned session owns the reader.
func (s *Source) newSession(ctx context.Context, path string) (*session, error) {
	charset, err := s.opts.charset()
	if err != nil {
		return nil, wrapError(CodeIllegalArgument, path, err, "invalid reader options")
	}
	reader, err := s.open(ctx, path)
	if err != nil {
		return nil, wrapError(CodeReaderOperationFailed, path, err,
			"failed to create orc reader for this file")
	}

	sess, err := s.buildSession(reader, path)
	if err != nil {
		_ = reader.Close()
		return nil, err
	}
	sess.dec = &decoder{
		path:       path,
		charset:    charset,
		imageSniff: s.opts.BinarySignatureCheck,
	}
	return sess, nil
}

func (s *Source) buildSession(reader orcfile.Reader, path string) (*session, error) {
	native := reader.Schema()
	if native == nil || native.Category != orcfile.CategoryStruct {
		return nil, newError(CodeReaderOperationFailed, path, "file schema is not a struct")
	}

	columns := s.opts.SelectedColumns
	if len(columns) == 0 {
		columns = append([]string(nil), native.FieldNames...)
	}

	colTypes := make([]*orcfile.TypeDescription, len(columns))
	colTargets := make([]unified.DataType, len(columns))
	for i, name := range columns {
		idx := native.FieldIndex(name)
		if idx < 0 {
			return nil, newError(CodeSchemaColumnMissing, path,
				"column [%s] does not exist in table schema [%v]", name, native.FieldNames)
		}
		colTypes[i] = native.Children[idx]
		var target unified.DataType
		if s.target != nil && i < s.target.NumFields() {
			target = s.target.FieldType(i)
		}
		ut, err := mapORCType(colTypes[i], target)
		if err != nil {
			var be *Error
			if errors.As(err, &be) && be.Path == "" {
				be.Path = path
			}
			return nil, err
		}
		colTargets[i] = ut
	}

	schema, err := unified.NewRowType(columns, colTargets)
	if err != nil {
		return nil, wrapError(CodeIllegalArgument, path, err, "invalid projected schema")
	}

	sess := &session{
		path:       path,
		reader:     reader,
		columns:    columns,
		colTypes:   colTypes,
		colTargets: colTargets,
		schema:     schema,
	}

	if s.opts.MergePartitions {
		parts, err := parsePartitions(path, s.opts.PartitionDefs)
		if err != nil {
			return nil, err
		}
		merged, err := appendPartitionFields(schema, parts)
		if err != nil {
			return nil, wrapError(CodeIllegalArgument, path, err, "partition fields collide with schema")
		}
		sess.parts = parts
		sess.schema = merged
	}
	return sess, nil
}

// RowReader is a lazy, forward-only, non-restartable sequence of rows over
// one open file. It observes the context given at open time: once that
// context is cancelled no further rows come back. Not safe for concurrent
// use.
type RowReader struct {
	ctx     context.Context
	sess    *session
	cursor  orcfile.Cursor
	tableID string

	batch  *orcfile.Batch
	rowIdx int
	closed bool
}

// Schema returns the unified schema of the rows this reader emits, partition
// fields included.
func (r *RowReader) Schema() *unified.RowType { return r.sess.schema }

// GetRow returns the next fully decoded row, or io.EOF after the last one.
// Row order follows file order within and across batches.
func (r *RowReader) GetRow() (*unified.Row, error) {
	if r.closed {
		return nil, io.EOF
	}
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}
	for r.batch == nil || r.rowIdx >= r.batch.Size {
		batch, err := r.cursor.NextBatch()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, wrapError(CodeReaderOperationFailed, r.sess.path, err, "failed to pull batch")
		}
		batchesInCounter.Add(r.ctx, 1, otelmetric.WithAttributes(
			attribute.String("reader", "orc"),
		))
		r.batch = batch
		r.rowIdx = 0
	}

	sess := r.sess
	numCols := len(sess.columns)
	values := make([]any, numCols, numCols+partLen(sess.parts))
	for j := 0; j < numCols; j++ {
		var vec orcfile.ColumnVector
		if j < len(r.batch.Cols) {
			vec = r.batch.Cols[j]
		}
		val, err := sess.dec.decodeCell(vec, sess.colTypes[j], sess.colTargets[j], r.rowIdx)
		if err != nil {
			return nil, err
		}
		values[j] = val
	}
	if sess.parts != nil {
		for i := 0; i < sess.parts.Len(); i++ {
			values = append(values, sess.parts.Value(i))
		}
	}
	r.rowIdx++

	rowsOutCounter.Add(r.ctx, 1, otelmetric.WithAttributes(
		attribute.String("reader", "orc"),
	))
	row := unified.NewRow(values)
	row.TableID = r.tableID
	return row, nil
}

// Close releases the underlying reader. Safe to call more than once.
func (r *RowReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.sess.reader.Close(); err != nil {
		slog.Error("failed to close orc reader", slog.String("file", r.sess.path), slog.Any("error", err))
		return err
	}
	return nil
}

func partLen(pm *PartitionMap) int {
	if pm == nil {
		return 0
	}
	return pm.Len()
}
