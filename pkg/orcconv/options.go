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
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ReaderOptions is the full set of recognized reader options. Values are
// treated as immutable once a Source is built over them.
type ReaderOptions struct {
	// TextEncoding is the charset name used to decode byte-string cells.
	// Defaults to UTF-8.
	TextEncoding string
	// SelectedColumns projects the file to the named top-level fields, in
	// this order. Empty means all native fields in file order.
	SelectedColumns []string
	// MergePartitions appends partition key/value pairs as trailing fields
	// to every row and to the inferred schema.
	MergePartitions bool
	// PartitionDefs declares the partition columns, in declaration order.
	// Required when MergePartitions is set.
	PartitionDefs []PartitionDef
	// BinarySignatureCheck opts in to the image-magic special case: byte
	// cells starting with a JPEG or PNG signature skip charset decoding and
	// come back as raw bytes.
	BinarySignatureCheck bool
}

// DefaultReaderOptions returns options with every default applied.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{TextEncoding: "UTF-8"}
}

// rawOptions is the wire shape accepted by OptionsFromMap. Unknown keys are
// rejected by the decoder.
type rawOptions struct {
	TextEncoding         string   `mapstructure:"textEncoding"`
	SelectedColumns      []string `mapstructure:"selectedColumns"`
	MergePartitions      bool     `mapstructure:"mergePartitions"`
	PartitionDefinitions []string `mapstructure:"partitionDefinitions"`
	BinarySignatureCheck bool     `mapstructure:"binarySignatureCheck"`
}

// OptionsFromMap decodes a configuration map into ReaderOptions. Only the
// recognized keys are accepted; anything else is an error. Partition
// definitions given by name use hive-style path extraction.
func OptionsFromMap(m map[string]any) (ReaderOptions, error) {
	opts := DefaultReaderOptions()
	var raw rawOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, fmt.Errorf("failed to build options decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return opts, fmt.Errorf("failed to decode reader options: %w", err)
	}

	if raw.TextEncoding != "" {
		opts.TextEncoding = raw.TextEncoding
	}
	opts.SelectedColumns = raw.SelectedColumns
	opts.MergePartitions = raw.MergePartitions
	opts.BinarySignatureCheck = raw.BinarySignatureCheck
	for _, name := range raw.PartitionDefinitions {
		opts.PartitionDefs = append(opts.PartitionDefs, HivePartition(name))
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks cross-field constraints and that the charset resolves.
func (o ReaderOptions) Validate() error {
	if o.MergePartitions && len(o.PartitionDefs) == 0 {
		return fmt.Errorf("mergePartitions requires partitionDefinitions")
	}
	if _, err := o.charset(); err != nil {
		return err
	}
	return nil
}

// charset resolves TextEncoding via the IANA registry. A nil encoding means
// the bytes are already UTF-8 and need no transformation.
func (o ReaderOptions) charset() (encoding.Encoding, error) {
	name := o.TextEncoding
	if name == "" {
		return nil, nil
	}
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("text encoding %q has no decoder", name)
	}
	return enc, nil
}
