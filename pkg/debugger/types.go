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

// Package debugger implements an optional interactive stepper over a
// running machine.Machine, driven by the symbol table produced alongside
// assembly.
package debugger

import (
	"github.com/tinyvm/tinyvm/pkg/assembler"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

// Breakpoint stops execution once PC reaches Addr (a byte address).
type Breakpoint struct {
	Addr int
}

// Debugger holds breakpoint state and the symbol table used to resolve
// addresses back to source lines and labels.
type Debugger struct {
	Break bool

	Breakpoints []Breakpoint

	SymTable *assembler.SymTable

	HandleBreak func(*Debugger, *machine.Machine)
}
