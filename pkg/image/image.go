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

// Package image defines the serialized machine-code image that the
// assembler produces and the machine loads: an ordered list of records,
// one per word address, in the shape documented for the wire format.
package image

import (
	"encoding/json"
	"fmt"

	"github.com/tinyvm/tinyvm/pkg/isa"
)

// Record is one word of the image: either a data word or an instruction
// word. Exactly one of the two shapes is populated, selected by Kind.
type Record struct {
	Kind   RecordKind
	Index  int
	Label  string
	Value  isa.Word
	Opcode isa.Opcode
	Arg    isa.Word
	Mode   isa.Mode
	Line   int
}

// RecordKind distinguishes a data record from an instruction record.
type RecordKind uint

const (
	KindData RecordKind = iota
	KindInstr
)

// Image is the ordered list of words produced by the assembler and
// consumed by the machine. Index i in Records corresponds to word
// address i (byte address i*isa.WordSize).
type Image struct {
	Records []Record
}

// EncodedWord returns the record's effective memory value: the data
// value for a data record, or the raw encoded instruction word for an
// instruction record (opcode in the high bits, mode and arg packed
// below it).
func (r Record) EncodedWord() isa.Word {
	if r.Kind == KindData {
		return r.Value
	}
	return isa.EncodeInstr(r.Opcode, r.Mode, r.Arg)
}

// wireRecord is the JSON-on-the-wire shape: a flat object carrying
// whichever fields its kind uses, with the rest omitted.
type wireRecord struct {
	Index  int     `json:"index"`
	Label  *string `json:"label,omitempty"`
	Value  *int32  `json:"value,omitempty"`
	Opcode *string `json:"opcode,omitempty"`
	Arg    *int32  `json:"arg,omitempty"`
	Mode   *string `json:"mode,omitempty"`
	Line   int     `json:"line"`
}

// Marshal serializes the image to its JSON record-list representation.
func Marshal(img Image) ([]byte, error) {
	wire := make([]wireRecord, len(img.Records))

	for i, rec := range img.Records {
		w := wireRecord{Index: rec.Index, Line: rec.Line}

		switch rec.Kind {
		case KindData:
			if rec.Label != "" {
				label := rec.Label
				w.Label = &label
			}
			value := int32(rec.Value)
			w.Value = &value

		case KindInstr:
			opname := rec.Opcode.Name()
			w.Opcode = &opname

			if isa.Table[rec.Opcode].Arity == isa.Arity1 {
				arg := int32(rec.Arg)
				w.Arg = &arg

				mode := rec.Mode.String()
				w.Mode = &mode
			}
		}

		wire[i] = w
	}

	return json.MarshalIndent(wire, "", "  ")
}

// Unmarshal parses the JSON record-list representation back into an
// Image. Returns an error on malformed JSON or an unknown opcode/mode
// name; it does not re-validate layout invariants (§3), which belong
// to the linker.
func Unmarshal(data []byte) (Image, error) {
	var wire []wireRecord

	if err := json.Unmarshal(data, &wire); err != nil {
		return Image{}, fmt.Errorf("image: %w", err)
	}

	records := make([]Record, len(wire))

	for i, w := range wire {
		rec := Record{Index: w.Index, Line: w.Line}

		if w.Opcode != nil {
			op, ok := isa.Lookup(*w.Opcode)
			if !ok {
				return Image{}, fmt.Errorf("image: record %d: unknown opcode %q", w.Index, *w.Opcode)
			}

			rec.Kind = KindInstr
			rec.Opcode = op

			if w.Arg != nil {
				rec.Arg = isa.Word(*w.Arg)
			}

			if w.Mode != nil {
				mode, ok := isa.ParseMode(*w.Mode)
				if !ok {
					return Image{}, fmt.Errorf("image: record %d: unknown mode %q", w.Index, *w.Mode)
				}
				rec.Mode = mode
			}
		} else {
			rec.Kind = KindData

			if w.Label != nil {
				rec.Label = *w.Label
			}

			if w.Value != nil {
				rec.Value = isa.Word(*w.Value)
			}
		}

		records[i] = rec
	}

	return Image{Records: records}, nil
}
