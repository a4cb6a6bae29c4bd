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

package machine

import "github.com/tinyvm/tinyvm/pkg/isa"

// Memory is a fixed-size, byte-addressed array with a 32-bit signed
// word view. It is allocated once at load time and never resized.
type Memory []byte

// ReadWord returns the word at byte address addr. addr must be
// 4-byte-aligned and within range; callers translate violations into
// FatalErrors.
func (m Memory) ReadWord(addr int) (isa.Word, bool) {
	if addr%isa.WordSize != 0 {
		return 0, false
	}
	if addr < 0 || addr+isa.WordSize > len(m) {
		return 0, false
	}
	return isa.GetWord(m[addr : addr+isa.WordSize]), true
}

// WriteWord stores w at byte address addr, subject to the same
// alignment and range checks as ReadWord.
func (m Memory) WriteWord(addr int, w isa.Word) bool {
	if addr%isa.WordSize != 0 {
		return false
	}
	if addr < 0 || addr+isa.WordSize > len(m) {
		return false
	}
	isa.PutWord(m[addr:addr+isa.WordSize], w)
	return true
}
