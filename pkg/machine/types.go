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

// Package machine simulates the accumulator CPU, byte-addressed memory,
// port-mapped I/O, and vectored interrupt controller described by the
// instruction set in pkg/isa.
package machine

import "github.com/tinyvm/tinyvm/pkg/isa"

// Registers holds the CPU's visible and transient state.
type Registers struct {
	AC    isa.Word
	PC    isa.Word
	AR    isa.Word
	DR    isa.Word
	Z     bool
	N     bool
	IE    bool
	InISR bool
}

// setFlags updates Z/N from the most recent ALU/load result, per the
// flag-consistency property.
func (r *Registers) setFlags(result isa.Word) {
	r.Z = result == 0
	r.N = result < 0
}

// ScheduledByte is one byte the driver promises to deliver to a port's
// input queue once the machine's tick counter reaches Tick.
type ScheduledByte struct {
	Tick  int
	Value byte
}

// PortSchedule is the driver-supplied timetable of input arrivals,
// keyed by port number. Entries for a port must be in non-decreasing
// Tick order.
type PortSchedule map[int][]ScheduledByte

// PortState is one port's independent input/output FIFOs and its
// interrupt-request line.
type PortState struct {
	In  []byte
	Out []byte
	IRQ bool
}

// Report is what Run returns: collected output, final register state,
// total elapsed ticks, and why the run ended.
type Report struct {
	Output    map[int][]byte
	Registers Registers
	Ticks     int
	Reason    string
	FiCount   int
}

// Termination reasons, per the external-interfaces contract.
const (
	ReasonHalt           = "halt"
	ReasonTicksExhausted = "ticks_exhausted"
)

// Fatal-error kinds, per the error-handling design.
const (
	FatalDivByZero     = "div_by_zero"
	FatalOutOfRange    = "memory_out_of_range"
	FatalMisaligned    = "misaligned_word_access"
	FatalUnknownOpcode = "unknown_opcode"
	FatalPortUnderflow = "port_underflow"
	FatalStackMismatch = "stack_mismatch"
)
