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
	"bytes"
	"encoding/gob"
)

// SymTable binds image word addresses back to source line numbers and
// label names, for the optional debugger side-channel.
type SymTable struct {
	Source  string
	Symbols map[int]int    // address -> source line
	Labels  map[int]string // address -> label name
}

// NewSymTable returns an empty, ready-to-populate SymTable.
func NewSymTable() *SymTable {
	return &SymTable{
		Symbols: make(map[int]int),
		Labels:  make(map[int]string),
	}
}

// Encode gob-encodes the symbol table for the `-g` flag of tinyvm-asm.
func (s *SymTable) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSymTable reverses Encode.
func DecodeSymTable(data []byte) (*SymTable, error) {
	var s SymTable
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
