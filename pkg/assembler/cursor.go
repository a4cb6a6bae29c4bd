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

// Cursor locates a point in the source for diagnostics. Errors built by
// this package locate the offending line only: Column is always 1, not
// the offset of the offending token.
type Cursor struct {
	Line   int
	Column int
}

// PositionedError is implemented by every syntax and layout error so
// callers can sort or format diagnostics by source position.
type PositionedError interface {
	error
	GetPosition() Cursor
}
