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
	"strconv"
	"strings"

	"github.com/tinyvm/tinyvm/pkg/isa"
)

type section uint

const (
	sectionNone section = iota
	sectionData
	sectionText
)

// splitCSV splits a comma-separated field list, leaving quoted strings
// intact even if they contain commas.
func splitCSV(s string) []string {
	var fields []string
	var b strings.Builder
	inString := false

	flush := func() {
		fields = append(fields, strings.TrimSpace(b.String()))
		b.Reset()
	}

	for _, c := range s {
		switch {
		case c == '"':
			inString = !inString
			b.WriteRune(c)
		case c == ',' && !inString:
			flush()
		default:
			b.WriteRune(c)
		}
	}
	flush()

	return fields
}

// parseIntLiteral parses a decimal or 0x-prefixed hexadecimal integer
// literal, with an optional leading '-'.
func parseIntLiteral(tok string) (isa.Word, bool) {
	neg := false
	rest := tok

	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}

	var n int64
	var err error

	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		n, err = strconv.ParseInt(rest[2:], 16, 64)
	} else {
		n, err = strconv.ParseInt(rest, 10, 64)
	}

	if err != nil {
		return 0, false
	}

	if neg {
		n = -n
	}

	return isa.Word(n), true
}

// parseDataValue parses one .data value field: an integer literal or a
// double-quoted string, which expands to one value per code point.
func parseDataValue(tok string, line int) ([]isa.Word, error) {
	if strings.HasPrefix(tok, `"`) {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return nil, &InvalidLiteralError{Cursor{line, 1}, tok}
		}

		values := make([]isa.Word, 0, len(s))
		for _, r := range s {
			values = append(values, isa.Word(r))
		}
		return values, nil
	}

	n, ok := parseIntLiteral(tok)
	if !ok {
		return nil, &InvalidLiteralError{Cursor{line, 1}, tok}
	}
	return []isa.Word{n}, nil
}

// parseOperand parses a single instruction operand token, mapping its
// `*`/`**` prefix and literal-vs-identifier shape to an addressing mode
// per the operand syntax rules.
func parseOperand(tok string, line int) (OperandRef, error) {
	derefs := 0
	for strings.HasPrefix(tok, "*") {
		derefs++
		tok = tok[1:]
	}

	if derefs > 2 {
		return OperandRef{}, &InvalidOperandError{Cursor{line, 1}, tok}
	}

	if tok == "" {
		return OperandRef{}, &InvalidOperandError{Cursor{line, 1}, tok}
	}

	if n, ok := parseIntLiteral(tok); ok {
		mode := isa.ModeValue
		switch derefs {
		case 1:
			mode = isa.ModeDeref
		case 2:
			mode = isa.ModeDeref2
		}
		return OperandRef{Mode: mode, Literal: true, Value: n}, nil
	}

	if !isValidIdent(tok) {
		return OperandRef{}, &InvalidOperandError{Cursor{line, 1}, tok}
	}

	mode := isa.ModeDirect
	switch derefs {
	case 1:
		mode = isa.ModeDeref
	case 2:
		mode = isa.ModeDeref2
	}

	return OperandRef{Mode: mode, Literal: false, Label: tok}, nil
}

// parse converts the lexer's rawLines into a Program, tracking section
// state and pending (label-only-line) label bindings.
func parse(lines []rawLine) (Program, []error) {
	var prog Program
	var errs []error
	var pending []string

	sec := sectionNone

	for _, rl := range lines {
		if rl.Directive != "" {
			switch rl.Directive {
			case ".data":
				sec = sectionData
			case ".text":
				sec = sectionText
			}
			continue
		}

		labels := pending
		pending = nil
		if rl.Label != "" {
			labels = append(labels, rl.Label)
		}

		if rl.Rest == "" {
			// Label-only line: carry it forward to the next term.
			pending = append(pending, labels...)
			continue
		}

		switch sec {
		case sectionNone:
			errs = append(errs, &OrphanStatementError{Cursor{rl.Line, 1}})

		case sectionData:
			fields := splitCSV(rl.Rest)

			if !strings.Contains(rl.Rest, ",") {
				if _, isOp := isa.Lookup(strings.Fields(rl.Rest)[0]); isOp {
					errs = append(errs, &InstructionInDataError{Cursor{rl.Line, 1}})
					continue
				}
			}

			size, ok := parseIntLiteral(fields[0])
			if !ok {
				errs = append(errs, &InvalidLiteralError{Cursor{rl.Line, 1}, fields[0]})
				continue
			}

			var values []isa.Word
			bad := false
			for _, f := range fields[1:] {
				vs, err := parseDataValue(f, rl.Line)
				if err != nil {
					errs = append(errs, err)
					bad = true
					continue
				}
				values = append(values, vs...)
			}
			if bad {
				continue
			}

			prog.Data = append(prog.Data, DataTerm{
				Labels: labels, Size: size, Values: values, Line: rl.Line,
			})

		case sectionText:
			if strings.Contains(rl.Rest, ",") {
				errs = append(errs, &DataInTextError{Cursor{rl.Line, 1}})
				continue
			}

			fields := strings.Fields(rl.Rest)

			op, ok := isa.Lookup(fields[0])
			if !ok {
				errs = append(errs, &UnknownOpcodeError{Cursor{rl.Line, 1}, fields[0]})
				continue
			}

			info := isa.Table[op]
			term := TextTerm{Labels: labels, Op: op, Line: rl.Line}

			switch info.Arity {
			case isa.Arity0:
				if len(fields) != 1 {
					errs = append(errs, &InvalidNumArgumentsError{
						Cursor{rl.Line, 1}, info.Name, 0, len(fields) - 1,
					})
					continue
				}

			case isa.Arity1:
				if len(fields) != 2 {
					errs = append(errs, &InvalidNumArgumentsError{
						Cursor{rl.Line, 1}, info.Name, 1, len(fields) - 1,
					})
					continue
				}

				operand, err := parseOperand(fields[1], rl.Line)
				if err != nil {
					errs = append(errs, err)
					continue
				}

				if !isa.ModeLegal(op, operand.Mode) {
					errs = append(errs, &InvalidAddressingModeError{
						Cursor{rl.Line, 1}, info.Name, operand.Mode.String(),
					})
					continue
				}

				term.HasOperand = true
				term.Operand = operand
			}

			prog.Text = append(prog.Text, term)
		}
	}

	return prog, errs
}
