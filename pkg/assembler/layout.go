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
	"fmt"

	"github.com/tinyvm/tinyvm/pkg/image"
	"github.com/tinyvm/tinyvm/pkg/isa"
)

func hasLabel(labels []string, name string) bool {
	for _, l := range labels {
		if l == name {
			return true
		}
	}
	return false
}

// layout runs the two-pass address assignment and operand resolution
// described in the component design, turning a Program into an Image
// and its debug symbol table.
func layout(prog Program) (image.Image, *SymTable, []error) {
	var errs []error

	startIdx := -1
	for i, t := range prog.Text {
		if hasLabel(t.Labels, "_start") {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return image.Image{}, nil, []error{&MissingStartError{}}
	}

	// Emission order: the _start term and everything after it, then
	// everything that preceded _start in the source (§3 invariant).
	order := make([]TextTerm, 0, len(prog.Text))
	order = append(order, prog.Text[startIdx:]...)
	order = append(order, prog.Text[:startIdx]...)

	labels := make(map[string]int)
	textAddrs := make([]int, len(order))

	// labels binds names to byte addresses (PC and every addressing mode
	// operate in bytes); addr itself tracks the word index used for the
	// Image's record positions.
	addr := isa.StartWord
	for i, t := range order {
		for _, l := range t.Labels {
			if _, exists := labels[l]; exists {
				errs = append(errs, &RedeclaredLabelError{Cursor{t.Line, 1}, l})
				continue
			}
			labels[l] = addr * isa.WordSize
		}
		textAddrs[i] = addr
		addr++
	}

	dataAddrs := make([]int, len(prog.Data))
	for i, d := range prog.Data {
		for _, l := range d.Labels {
			if _, exists := labels[l]; exists {
				errs = append(errs, &RedeclaredLabelError{Cursor{d.Line, 1}, l})
				continue
			}
			labels[l] = addr * isa.WordSize
		}
		dataAddrs[i] = addr
		addr += 1 + len(d.Values)
	}

	if len(errs) > 0 {
		return image.Image{}, nil, errs
	}

	vectors := make([]isa.Word, isa.NumVectors)
	for n := 1; n <= isa.NumVectors; n++ {
		name := fmt.Sprintf("int%d", n)
		if a, ok := labels[name]; ok {
			vectors[n-1] = isa.Word(a)
		} else {
			vectors[n-1] = isa.NoHandler
		}
	}

	symtab := NewSymTable()

	records := make([]image.Record, 0, addr)

	for i := 0; i < isa.NumVectors; i++ {
		records = append(records, image.Record{Kind: image.KindData, Index: i, Value: vectors[i]})
	}
	for i := isa.NumVectors; i < isa.PrologueWords; i++ {
		records = append(records, image.Record{Kind: image.KindData, Index: i, Value: 0})
	}

	for i, t := range order {
		a := textAddrs[i]
		rec := image.Record{Kind: image.KindInstr, Index: a, Opcode: t.Op, Line: t.Line}

		if t.HasOperand {
			op := t.Operand
			if op.Literal {
				rec.Arg = op.Value
			} else {
				val, ok := labels[op.Label]
				if !ok {
					errs = append(errs, &UndefinedLabelError{Cursor{t.Line, 1}, op.Label})
					continue
				}
				rec.Arg = isa.Word(val)
			}
			rec.Mode = op.Mode
		}

		records = append(records, rec)
		symtab.Symbols[a] = t.Line
		for _, l := range t.Labels {
			symtab.Labels[a] = l
		}
	}

	for i, d := range prog.Data {
		a := dataAddrs[i]
		label := ""
		if len(d.Labels) > 0 {
			label = d.Labels[0]
		}

		records = append(records, image.Record{
			Kind: image.KindData, Index: a, Label: label, Value: d.Size, Line: d.Line,
		})
		symtab.Symbols[a] = d.Line
		if label != "" {
			symtab.Labels[a] = label
		}

		for j, v := range d.Values {
			records = append(records, image.Record{
				Kind: image.KindData, Index: a + 1 + j, Value: v, Line: d.Line,
			})
		}
	}

	if len(errs) > 0 {
		return image.Image{}, nil, errs
	}

	symtab.Source = ""
	return image.Image{Records: records}, symtab, nil
}
