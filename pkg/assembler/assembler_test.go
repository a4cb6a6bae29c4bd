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

package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyvm/tinyvm/pkg/image"
	"github.com/tinyvm/tinyvm/pkg/isa"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
.text
_start:
    ld 5
    hlt
`
	img, symtab, errs := Assemble(src)
	require.Empty(t, errs)
	require.Len(t, img.Records, isa.PrologueWords+2)

	ld := img.Records[isa.StartWord]
	assert.Equal(t, image.KindInstr, ld.Kind)
	assert.Equal(t, isa.OpLd, ld.Opcode)
	assert.Equal(t, isa.ModeValue, ld.Mode)
	assert.EqualValues(t, 5, ld.Arg)

	hlt := img.Records[isa.StartWord+1]
	assert.Equal(t, isa.OpHlt, hlt.Opcode)

	assert.Equal(t, "_start", symtab.Labels[isa.StartWord])
}

func TestAssembleDataAndLabelReference(t *testing.T) {
	src := `
.data
count: 1, 42
.text
_start:
    ld count
    hlt
`
	img, _, errs := Assemble(src)
	require.Empty(t, errs)

	ld := img.Records[isa.StartWord]
	assert.Equal(t, isa.ModeDirect, ld.Mode)

	dataAddr := int(ld.Arg) / isa.WordSize
	assert.Equal(t, "count", img.Records[dataAddr].Label)
	assert.EqualValues(t, 1, img.Records[dataAddr].Value)
	assert.EqualValues(t, 42, img.Records[dataAddr+1].Value)
}

func TestAssembleStringLiteral(t *testing.T) {
	src := `
.data
greeting: 2, "hi"
.text
_start:
    hlt
`
	img, _, errs := Assemble(src)
	require.Empty(t, errs)

	base := isa.StartWord + 1
	assert.EqualValues(t, 2, img.Records[base].Value)
	assert.EqualValues(t, 'h', img.Records[base+1].Value)
	assert.EqualValues(t, 'i', img.Records[base+2].Value)
}

func TestAssembleMissingStart(t *testing.T) {
	src := `
.text
loop:
    nop
`
	_, _, errs := Assemble(src)
	require.Len(t, errs, 1)
	assert.IsType(t, &MissingStartError{}, errs[0])
}

func TestAssembleUndefinedLabel(t *testing.T) {
	src := `
.text
_start:
    jmp nowhere
`
	_, _, errs := Assemble(src)
	require.Len(t, errs, 1)
	assert.IsType(t, &UndefinedLabelError{}, errs[0])
}

func TestAssembleRedeclaredLabel(t *testing.T) {
	src := `
.text
_start:
    nop
_start:
    hlt
`
	_, _, errs := Assemble(src)
	require.NotEmpty(t, errs)
	assert.IsType(t, &RedeclaredLabelError{}, errs[0])
}

func TestAssembleUnknownOpcode(t *testing.T) {
	src := `
.text
_start:
    frobnicate
`
	_, _, errs := Assemble(src)
	require.Len(t, errs, 1)
	assert.IsType(t, &UnknownOpcodeError{}, errs[0])
}

func TestAssembleInvalidAddressingMode(t *testing.T) {
	src := `
.text
_start:
    st 5
`
	_, _, errs := Assemble(src)
	require.Len(t, errs, 1)
	assert.IsType(t, &InvalidAddressingModeError{}, errs[0])
}

func TestAssemblePreStartCodeEmittedAfter(t *testing.T) {
	src := `
.text
before:
    nop
_start:
    jmp before
`
	img, _, errs := Assemble(src)
	require.Empty(t, errs)

	assert.Equal(t, isa.OpJmp, img.Records[isa.StartWord].Opcode)
	assert.Equal(t, isa.OpNop, img.Records[isa.StartWord+1].Opcode)
	assert.EqualValues(t, (isa.StartWord+1)*isa.WordSize, img.Records[isa.StartWord].Arg)
}

func TestAssembleMisplacedDirective(t *testing.T) {
	src := `
.text
_start:
    hlt
loop: .data
`
	_, _, errs := Assemble(src)
	require.Len(t, errs, 1)
	assert.IsType(t, &MisplacedDirectiveError{}, errs[0])
}

func TestAssembleVectorBinding(t *testing.T) {
	src := `
.text
int1:
    iret
_start:
    eni
    hlt
`
	img, _, errs := Assemble(src)
	require.Empty(t, errs)

	assert.EqualValues(t, (isa.StartWord+2)*isa.WordSize, img.Records[0].Value)
	for i := 1; i < isa.NumVectors; i++ {
		assert.EqualValues(t, isa.NoHandler, img.Records[i].Value)
	}
}
