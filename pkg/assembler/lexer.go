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
	"bufio"
	"strings"
)

// rawLine is one source line stripped of comments, with its optional
// leading label already split off.
type rawLine struct {
	Line      int
	Label     string // "" if the line has no label prefix
	Directive string // ".data" or ".text", lowercased; "" if not a directive
	Rest      string // remainder after the label and directive, trimmed
}

// stripComment removes a trailing `;`-to-end-of-line comment, leaving
// quoted strings alone.
func stripComment(line string) string {
	inString := false

	for i, c := range line {
		switch c {
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return line[:i]
			}
		}
	}

	return line
}

// isIdentStart reports whether c can begin a label or identifier.
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentChar reports whether c can continue a label or identifier.
func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isValidIdent reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func isValidIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// splitLabel extracts a leading `name:` label prefix from line, if
// present and name is a syntactically valid identifier.
func splitLabel(line string) (label string, rest string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, true
	}

	candidate := strings.TrimSpace(line[:idx])
	if !isValidIdent(candidate) {
		return candidate, "", false
	}

	return candidate, strings.TrimSpace(line[idx+1:]), true
}

// lex splits source into rawLines: comments stripped, directives and
// label prefixes recognized, blank lines dropped.
func lex(source string) ([]rawLine, []error) {
	var lines []rawLine
	var errs []error

	scanner := bufio.NewScanner(strings.NewReader(source))
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(stripComment(scanner.Text()))
		if text == "" {
			continue
		}

		lowered := strings.ToLower(text)
		if lowered == ".data" || lowered == ".text" {
			lines = append(lines, rawLine{Line: lineNo, Directive: lowered})
			continue
		}

		label, rest, ok := splitLabel(text)
		if !ok {
			errs = append(errs, &InvalidLabelNameError{Cursor{lineNo, 1}, label})
			continue
		}

		if restLowered := strings.ToLower(rest); restLowered == ".data" || restLowered == ".text" {
			// A directive marks a section boundary for the whole file; it
			// can't also be the target of a label, so reject it here
			// rather than letting it fall through and parse as a bogus
			// instruction or data term.
			errs = append(errs, &MisplacedDirectiveError{Cursor{lineNo, 1}, rest})
			continue
		}

		lines = append(lines, rawLine{Line: lineNo, Label: label, Rest: rest})
	}

	return lines, errs
}
