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

package machine

import (
	"github.com/tinyvm/tinyvm/pkg/image"
	"github.com/tinyvm/tinyvm/pkg/isa"
)

// acSaveAddr and pcSaveAddr are the two reserved prologue save words,
// in byte addresses.
const (
	acSaveAddr = isa.NumVectors * isa.WordSize
	pcSaveAddr = (isa.NumVectors + 1) * isa.WordSize
)

// DefaultDataRegion is extra memory reserved past the image for
// runtime-only scratch space, when the driver doesn't specify one.
const DefaultDataRegion = 4096

// Machine is one simulation instance: memory, registers, ports, and
// the bookkeeping Run needs to produce a Report.
type Machine struct {
	Mem   Memory
	Reg   Registers
	Ports map[int]*PortState

	schedule PortSchedule
	ticks    int
	fiCount  int
	halted   bool
	symtab   map[int]int // word address -> source line, optional
}

// New constructs a Machine from an assembled Image, pre-populating
// memory, the vector table, and the port input schedule. memSize is
// the total memory size in bytes; image words beyond it are an error
// the caller should have avoided at link time, so New clamps to at
// least the image size plus DefaultDataRegion.
func New(img image.Image, sched PortSchedule, memSize int) *Machine {
	need := len(img.Records) * isa.WordSize
	if memSize < need+DefaultDataRegion {
		memSize = need + DefaultDataRegion
	}

	m := &Machine{
		Mem:      make(Memory, memSize),
		Ports:    make(map[int]*PortState),
		schedule: sched,
	}

	for _, rec := range img.Records {
		addr := rec.Index * isa.WordSize
		m.Mem.WriteWord(addr, rec.EncodedWord())
	}

	m.Reg.PC = isa.StartByte

	for p := range sched {
		m.port(p)
	}

	return m
}

// WithSymbols attaches a line-number table for fatal-error diagnostics,
// keyed by word address as in the assembler's SymTable.Symbols. Neither
// the root package's Run nor cmd/tinyvm attaches one, so the fatal
// errors they report carry Line 0.
func (m *Machine) WithSymbols(symtab map[int]int) *Machine {
	m.symtab = symtab
	return m
}

// Halted reports whether the machine has executed hlt.
func (m *Machine) Halted() bool {
	return m.halted
}

// Ticks returns the elapsed tick count.
func (m *Machine) Ticks() int {
	return m.ticks
}

func (m *Machine) port(p int) *PortState {
	if ps, ok := m.Ports[p]; ok {
		return ps
	}
	ps := &PortState{}
	m.Ports[p] = ps
	return ps
}

func (m *Machine) lineAt(byteAddr int) int {
	if m.symtab == nil {
		return 0
	}
	return m.symtab[byteAddr/isa.WordSize]
}

// deliverSchedule moves any bytes due at the current tick count from
// the driver's schedule into their port's input queue, asserting IRQ.
func (m *Machine) deliverSchedule() {
	for p, entries := range m.schedule {
		var remaining []ScheduledByte
		ps := m.port(p)

		for _, e := range entries {
			if e.Tick <= m.ticks {
				ps.In = append(ps.In, e.Value)
				ps.IRQ = true
			} else {
				remaining = append(remaining, e)
			}
		}

		m.schedule[p] = remaining
	}
}

// vectorForPort maps a port's IRQ line to its interrupt vector slot:
// port n (1..8) is served by the handler bound to label intN, i.e.
// vector slot n-1. Port 0 is reserved for the SPI clock line and never
// requests an interrupt.
func vectorForPort(p int) int {
	if p >= 1 && p <= isa.NumVectors {
		return p - 1
	}
	return -1
}

// pendingVector returns the lowest-numbered asserted vector slot that
// also has a bound handler, or -1 if none is pending. A port whose IRQ
// line is asserted but whose vector slot is unbound (intN never
// declared) never blocks the machine: it simply has no interrupt to
// accept, and execution falls through to the next instruction.
func (m *Machine) pendingVector() int {
	best := -1

	for p, ps := range m.Ports {
		if !ps.IRQ {
			continue
		}
		v := vectorForPort(p)
		if v < 0 {
			continue
		}
		vecAddr, ok := m.Mem.ReadWord(v * isa.WordSize)
		if !ok || vecAddr == isa.NoHandler {
			continue
		}
		if best < 0 || v < best {
			best = v
		}
	}

	return best
}

// Step executes at most one instruction: it first delivers any input
// due this tick and checks for an acceptable interrupt at the
// instruction boundary, then fetches, decodes, and executes.
func (m *Machine) Step() *FatalError {
	if m.halted {
		return nil
	}

	m.deliverSchedule()

	if m.Reg.IE && !m.Reg.InISR {
		if vec := m.pendingVector(); vec >= 0 {
			return m.acceptInterrupt(vec)
		}
	}

	return m.execute()
}

// acceptInterrupt vectors to vec's bound handler. Callers must only
// pass a vector pendingVector has already confirmed is bound; this
// does not itself fall through to execute() on an unbound vector, so
// it must never be called with one.
func (m *Machine) acceptInterrupt(vec int) *FatalError {
	vecAddr, ok := m.Mem.ReadWord(vec * isa.WordSize)
	if !ok {
		return m.memoryFault(vec*isa.WordSize, m.lineAt(int(m.Reg.PC)))
	}

	m.Mem.WriteWord(acSaveAddr, m.Reg.AC)
	m.Mem.WriteWord(pcSaveAddr, m.Reg.PC)

	m.Reg.PC = vecAddr
	m.Reg.IE = false
	m.Reg.InISR = true

	return nil
}

// Run steps the machine until it halts, hits a fatal condition, or
// exhausts maxTicks, then returns the collected Report.
func (m *Machine) Run(maxTicks int) (Report, error) {
	for !m.halted && m.ticks < maxTicks {
		if ferr := m.Step(); ferr != nil {
			return m.report(ferr.Reason()), nil
		}
	}

	if m.halted {
		return m.report(ReasonHalt), nil
	}

	return m.report(ReasonTicksExhausted), nil
}

func (m *Machine) report(reason string) Report {
	output := make(map[int][]byte, len(m.Ports))
	for p, ps := range m.Ports {
		if len(ps.Out) > 0 {
			output[p] = ps.Out
		}
	}

	return Report{
		Output:    output,
		Registers: m.Reg,
		Ticks:     m.ticks,
		Reason:    reason,
		FiCount:   m.fiCount,
	}
}
