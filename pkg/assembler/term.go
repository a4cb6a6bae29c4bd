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

import "github.com/tinyvm/tinyvm/pkg/isa"

// DataTerm is one parsed `.data` definition: a length-prefix word
// followed by zero or more value words.
type DataTerm struct {
	Labels []string
	Size   isa.Word
	Values []isa.Word
	Line   int
}

// OperandRef is an instruction's unresolved operand: either an
// immediate literal or a reference to a label, tagged with the
// addressing mode its source syntax selected.
type OperandRef struct {
	Mode    isa.Mode
	Literal bool
	Value   isa.Word
	Label   string
}

// TextTerm is one parsed `.text` statement: an opcode with an optional
// operand.
type TextTerm struct {
	Labels     []string
	Op         isa.Opcode
	HasOperand bool
	Operand    OperandRef
	Line       int
}

// Program is the lexer/parser's output: the two term lists described
// in the component design.
type Program struct {
	Data []DataTerm
	Text []TextTerm
}
