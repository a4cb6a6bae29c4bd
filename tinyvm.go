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

// Package tinyvm glues the assembler, image serializer, and machine
// into the two operations a driver needs: translate source to an
// image, and run an image to completion.
package tinyvm

import (
	"github.com/tinyvm/tinyvm/pkg/assembler"
	"github.com/tinyvm/tinyvm/pkg/image"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

// Image re-exports the assembled machine-code image type.
type Image = image.Image

// Report re-exports the machine's run-result type.
type Report = machine.Report

// PortSchedule re-exports the driver-supplied input timetable.
type PortSchedule = machine.PortSchedule

// SymTable re-exports the assembler's debug symbol table.
type SymTable = assembler.SymTable

// Translate runs the full lex/parse/layout pipeline over source,
// returning the resolved image, or the full set of errors found.
func Translate(source string) (Image, []error) {
	img, _, errs := assembler.Assemble(source)
	return img, errs
}

// TranslateWithSymbols is Translate plus the debug symbol table,
// for drivers that want source-line diagnostics (e.g. pkg/debugger).
func TranslateWithSymbols(source string) (Image, *SymTable, []error) {
	return assembler.Assemble(source)
}

// Run loads img into a fresh machine and executes it until halt,
// fatal error, or maxTicks is exhausted, then returns the collected
// Report.
func Run(img Image, ports PortSchedule, maxTicks int) (Report, error) {
	m := machine.New(img, ports, machine.DefaultDataRegion)
	return m.Run(maxTicks)
}
