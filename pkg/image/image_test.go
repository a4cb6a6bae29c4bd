// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyvm/tinyvm/pkg/isa"
)

func sampleImage() Image {
	records := make([]Record, isa.PrologueWords)
	for i := range records {
		records[i] = Record{Kind: KindData, Index: i, Value: 0, Line: 0}
	}

	records = append(records,
		Record{Kind: KindInstr, Index: isa.StartWord, Opcode: isa.OpLd, Arg: 5, Mode: isa.ModeValue, Line: 1},
		Record{Kind: KindInstr, Index: isa.StartWord + 1, Opcode: isa.OpHlt, Line: 2},
		Record{Kind: KindData, Index: isa.StartWord + 2, Label: "count", Value: 3, Line: 3},
	)

	return Image{Records: records}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	img := sampleImage()

	data, err := Marshal(img)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, img, got)
}

func TestUnmarshalUnknownOpcode(t *testing.T) {
	_, err := Unmarshal([]byte(`[{"index":0,"opcode":"frobnicate","line":1}]`))
	assert.Error(t, err)
}

func TestUnmarshalUnknownMode(t *testing.T) {
	_, err := Unmarshal([]byte(`[{"index":0,"opcode":"ld","arg":1,"mode":"sideways","line":1}]`))
	assert.Error(t, err)
}
