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

// Package assembler turns tinyvm assembly source into a serialized
// machine-code image: lexing, parsing, layout, and label/address
// resolution.
package assembler

import "github.com/tinyvm/tinyvm/pkg/image"

// Assemble runs the full lex/parse/layout pipeline over source,
// returning the resolved image and its debug symbol table. On any
// syntax or layout error, no image is produced and the full set of
// errors found is returned; the assembler does not recover past the
// first error within a given line, but continues scanning later lines.
func Assemble(source string) (image.Image, *SymTable, []error) {
	lines, lexErrs := lex(source)
	if len(lexErrs) > 0 {
		return image.Image{}, nil, lexErrs
	}

	prog, parseErrs := parse(lines)
	if len(parseErrs) > 0 {
		return image.Image{}, nil, parseErrs
	}

	img, symtab, layoutErrs := layout(prog)
	if len(layoutErrs) > 0 {
		return image.Image{}, nil, layoutErrs
	}

	symtab.Source = source

	return img, symtab, nil
}
