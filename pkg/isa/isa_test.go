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

package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	op, ok := Lookup("JMP")
	assert.True(t, ok)
	assert.Equal(t, OpJmp, op)

	_, ok = Lookup("nonsense")
	assert.False(t, ok)
}

func TestModeLegal(t *testing.T) {
	assert.True(t, ModeLegal(OpLd, ModeValue))
	assert.True(t, ModeLegal(OpSt, ModeDirect))
	assert.False(t, ModeLegal(OpSt, ModeValue))
	assert.False(t, ModeLegal(OpOut, ModeDirect))
	assert.False(t, ModeLegal(OpHlt, ModeValue))
}

func TestTicks(t *testing.T) {
	assert.Equal(t, 4, Ticks(OpMul))
	assert.Equal(t, 1, Ticks(OpNop))
}

func TestWordRoundTrip(t *testing.T) {
	buf := make([]byte, WordSize)
	PutWord(buf, -42)
	assert.Equal(t, Word(-42), GetWord(buf))
}

func TestPrologueConstants(t *testing.T) {
	assert.Equal(t, 10, PrologueWords)
	assert.Equal(t, 40, StartByte)
}
