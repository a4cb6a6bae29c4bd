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

import "fmt"

type UnknownOpcodeError struct {
	Position Cursor
	Received string
}

func (err *UnknownOpcodeError) GetPosition() Cursor { return err.Position }

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%d: unknown opcode %q", err.Position.Line, err.Received)
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Mnemonic string
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor { return err.Position }

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%d: %s takes %d operand(s), got %d",
		err.Position.Line, err.Mnemonic, err.Required, err.Received,
	)
}

type InvalidAddressingModeError struct {
	Position Cursor
	Mnemonic string
	Mode     string
}

func (err *InvalidAddressingModeError) GetPosition() Cursor { return err.Position }

func (err *InvalidAddressingModeError) Error() string {
	return fmt.Sprintf(
		"%d: %s does not accept %s addressing", err.Position.Line, err.Mnemonic, err.Mode,
	)
}

type InvalidLabelNameError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelNameError) GetPosition() Cursor { return err.Position }

func (err *InvalidLabelNameError) Error() string {
	return fmt.Sprintf("%d: invalid label name %q", err.Position.Line, err.Received)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor { return err.Position }

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf("%d: redeclaration of label %q", err.Position.Line, err.Received)
}

type UndefinedLabelError struct {
	Position Cursor
	Received string
}

func (err *UndefinedLabelError) GetPosition() Cursor { return err.Position }

func (err *UndefinedLabelError) Error() string {
	return fmt.Sprintf("%d: undefined label %q", err.Position.Line, err.Received)
}

type InvalidLiteralError struct {
	Position Cursor
	Received string
}

func (err *InvalidLiteralError) GetPosition() Cursor { return err.Position }

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf("%d: invalid numeric literal %q", err.Position.Line, err.Received)
}

type InvalidOperandError struct {
	Position Cursor
	Received string
}

func (err *InvalidOperandError) GetPosition() Cursor { return err.Position }

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf("%d: invalid operand %q", err.Position.Line, err.Received)
}

type DataInTextError struct {
	Position Cursor
}

func (err *DataInTextError) GetPosition() Cursor { return err.Position }

func (err *DataInTextError) Error() string {
	return fmt.Sprintf("%d: data definition not allowed in .text", err.Position.Line)
}

type InstructionInDataError struct {
	Position Cursor
}

func (err *InstructionInDataError) GetPosition() Cursor { return err.Position }

func (err *InstructionInDataError) Error() string {
	return fmt.Sprintf("%d: instruction not allowed in .data", err.Position.Line)
}

type MisplacedDirectiveError struct {
	Position Cursor
	Received string
}

func (err *MisplacedDirectiveError) GetPosition() Cursor { return err.Position }

func (err *MisplacedDirectiveError) Error() string {
	return fmt.Sprintf("%d: misplaced directive %q", err.Position.Line, err.Received)
}

type OrphanStatementError struct {
	Position Cursor
}

func (err *OrphanStatementError) GetPosition() Cursor { return err.Position }

func (err *OrphanStatementError) Error() string {
	return fmt.Sprintf("%d: statement outside .data/.text section", err.Position.Line)
}

// MissingStartError has no single source position; _start is simply
// never declared.
type MissingStartError struct{}

func (err *MissingStartError) Error() string {
	return "_start label is not defined"
}
