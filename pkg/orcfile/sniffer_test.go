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

package orcfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, data, 0o644))
}

// TrailerBytes builds a minimal valid ORC tail: the magic at the end of the
// postscript followed by the postscript-length byte.
func trailerBytes() []byte {
	return append([]byte(Magic), byte(len(Magic)+1))
}

func TestDetectFormat_TrailerMagic(t *testing.T) {
	fsys := afero.NewMemMapFs()
	data := append([]byte("some stripe data here"), trailerBytes()...)
	writeFile(t, fsys, "/data/file.orc", data)

	ok, err := DetectFormat(fsys, "/data/file.orc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDetectFormat_LegacyHeaderOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	// 0.11-style file: marker at the head, nothing recognizable at the tail.
	data := append([]byte(Magic), []byte("old format body without a postscript")...)
	writeFile(t, fsys, "/data/legacy.orc", data)

	ok, err := DetectFormat(fsys, "/data/legacy.orc")
	require.NoError(t, err)
	assert.True(t, ok)

	// Re-sniffing the same bytes stays true.
	ok, err = DetectFormat(fsys, "/data/legacy.orc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDetectFormat_PostscriptTooShortFallsBackToHeader(t *testing.T) {
	fsys := afero.NewMemMapFs()
	// Declared postscript length (0) cannot contain the magic, but the
	// header carries it.
	data := append([]byte(Magic), []byte("body")...)
	data = append(data, 0x00)
	writeFile(t, fsys, "/data/shortps.orc", data)

	ok, err := DetectFormat(fsys, "/data/shortps.orc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDetectFormat_NotORC(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/file.csv", []byte("id,name\n1,alpha\n2,beta\n"))

	ok, err := DetectFormat(fsys, "/data/file.csv")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectFormat_TruncatedFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/tiny", []byte{0x05})

	ok, err := DetectFormat(fsys, "/data/tiny")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectFormat_EmptyFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/empty", nil)

	ok, err := DetectFormat(fsys, "/data/empty")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectFormat_MissingFileIsAnError(t *testing.T) {
	fsys := afero.NewMemMapFs()

	ok, err := DetectFormat(fsys, "/data/nope.orc")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDetectFormat_LargeFileReadsTailWindowOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	body := make([]byte, 64*1024)
	for i := range body {
		body[i] = byte(i % 251)
	}
	data := append(body, trailerBytes()...)
	writeFile(t, fsys, "/data/big.orc", data)

	ok, err := DetectFormat(fsys, "/data/big.orc")
	require.NoError(t, err)
	assert.True(t, ok)
}
