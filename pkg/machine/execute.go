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

import "github.com/tinyvm/tinyvm/pkg/isa"

// memoryFault classifies a failed Memory access into the right fatal
// kind: misaligned addresses are reported separately from addresses
// that are simply out of range. addr is the faulting memory address;
// the error's PC is that of the instruction being executed.
func (m *Machine) memoryFault(addr int, line int) *FatalError {
	kind := FatalOutOfRange
	if addr%isa.WordSize != 0 {
		kind = FatalMisaligned
	}
	return &FatalError{Kind: kind, PC: int(m.Reg.PC), Line: line}
}

// fetchValue resolves an operand's value per the addressing-mode fetch
// rules: value returns the literal; direct/deref read memory once;
// deref2 reads memory twice.
func (m *Machine) fetchValue(mode isa.Mode, x isa.Word, line int) (isa.Word, *FatalError) {
	switch mode {
	case isa.ModeValue:
		return x, nil

	case isa.ModeDirect, isa.ModeDeref:
		v, ok := m.Mem.ReadWord(int(x))
		if !ok {
			return 0, m.memoryFault(int(x), line)
		}
		return v, nil

	case isa.ModeDeref2:
		addr, ok := m.Mem.ReadWord(int(x))
		if !ok {
			return 0, m.memoryFault(int(x), line)
		}
		v, ok := m.Mem.ReadWord(int(addr))
		if !ok {
			return 0, m.memoryFault(int(addr), line)
		}
		return v, nil
	}

	return 0, nil
}

// resolveAddress resolves an address-producing operand: value and
// direct modes use x itself (a literal address or a label's own
// address); deref2 follows one indirection to the address stored at
// x. Used by both `st`'s destination and the jump family's target,
// which need an address rather than a further-fetched value.
func (m *Machine) resolveAddress(mode isa.Mode, x isa.Word, line int) (int, *FatalError) {
	switch mode {
	case isa.ModeValue, isa.ModeDirect:
		return int(x), nil
	case isa.ModeDeref2:
		addr, ok := m.Mem.ReadWord(int(x))
		if !ok {
			return 0, m.memoryFault(int(x), line)
		}
		return int(addr), nil
	}
	return 0, nil
}

// execute fetches, decodes, and runs the instruction at PC, advancing
// PC and the tick counter per the ISA's declared cost.
func (m *Machine) execute() *FatalError {
	pc := int(m.Reg.PC)
	line := m.lineAt(pc)

	word, ok := m.Mem.ReadWord(pc)
	if !ok {
		return m.memoryFault(pc, line)
	}

	op, mode, arg := isa.DecodeInstr(word)
	info, known := isa.Table[op]
	if !known {
		return &FatalError{Kind: FatalUnknownOpcode, PC: pc, Line: line}
	}

	jumped := false

	switch op {
	case isa.OpLd:
		v, ferr := m.fetchValue(mode, arg, line)
		if ferr != nil {
			return ferr
		}
		m.Reg.AC = v
		m.Reg.setFlags(v)

	case isa.OpSt:
		addr, ferr := m.resolveAddress(mode, arg, line)
		if ferr != nil {
			return ferr
		}
		if !m.Mem.WriteWord(addr, m.Reg.AC) {
			return m.memoryFault(addr, line)
		}

	case isa.OpAdd, isa.OpSub, isa.OpMul, isa.OpDiv, isa.OpAnd, isa.OpOr, isa.OpCmp:
		v, ferr := m.fetchValue(mode, arg, line)
		if ferr != nil {
			return ferr
		}

		var result isa.Word
		switch op {
		case isa.OpAdd:
			result = m.Reg.AC + v
		case isa.OpSub, isa.OpCmp:
			result = m.Reg.AC - v
		case isa.OpMul:
			result = m.Reg.AC * v
		case isa.OpDiv:
			if v == 0 {
				return &FatalError{Kind: FatalDivByZero, PC: pc, Line: line}
			}
			result = m.Reg.AC / v
		case isa.OpAnd:
			result = m.Reg.AC & v
		case isa.OpOr:
			result = m.Reg.AC | v
		}

		m.Reg.setFlags(result)
		if op != isa.OpCmp {
			m.Reg.AC = result
		}

	case isa.OpInc:
		m.Reg.AC++
		m.Reg.setFlags(m.Reg.AC)

	case isa.OpDec:
		m.Reg.AC--
		m.Reg.setFlags(m.Reg.AC)

	case isa.OpAsr:
		m.Reg.AC = m.Reg.AC >> 1
		m.Reg.setFlags(m.Reg.AC)

	case isa.OpLsl:
		m.Reg.AC = m.Reg.AC << 1
		m.Reg.setFlags(m.Reg.AC)

	case isa.OpJmp, isa.OpJz, isa.OpJnz, isa.OpJn, isa.OpJp:
		take := op == isa.OpJmp ||
			(op == isa.OpJz && m.Reg.Z) ||
			(op == isa.OpJnz && !m.Reg.Z) ||
			(op == isa.OpJn && m.Reg.N) ||
			(op == isa.OpJp && !m.Reg.N)

		if take {
			target, ferr := m.resolveAddress(mode, arg, line)
			if ferr != nil {
				return ferr
			}
			m.Reg.PC = isa.Word(target)
			jumped = true
		}

	case isa.OpOut:
		low := byte(m.Reg.AC & 0xFF)
		ps := m.port(int(arg))
		ps.Out = append(ps.Out, low)

	case isa.OpIn:
		ps := m.port(int(arg))
		if len(ps.In) == 0 {
			return &FatalError{Kind: FatalPortUnderflow, PC: pc, Line: line}
		}
		b := ps.In[0]
		ps.In = ps.In[1:]
		if len(ps.In) == 0 {
			ps.IRQ = false
		}
		m.Reg.AC = isa.Word(b)
		m.Reg.setFlags(m.Reg.AC)

	case isa.OpInt:
		if m.Reg.InISR {
			return &FatalError{Kind: FatalStackMismatch, PC: pc, Line: line}
		}

		n := int(arg)
		vecAddr, ok := m.Mem.ReadWord((n - 1) * isa.WordSize)
		if ok && vecAddr != isa.NoHandler {
			m.Mem.WriteWord(acSaveAddr, m.Reg.AC)
			m.Mem.WriteWord(pcSaveAddr, m.Reg.PC)
			m.Reg.PC = vecAddr
			m.Reg.IE = false
			m.Reg.InISR = true
			jumped = true
		}

	case isa.OpEni:
		m.Reg.IE = true

	case isa.OpDii:
		m.Reg.IE = false

	case isa.OpFi, isa.OpIret:
		if !m.Reg.InISR {
			return &FatalError{Kind: FatalStackMismatch, PC: pc, Line: line}
		}

		ac, _ := m.Mem.ReadWord(acSaveAddr)
		restoredPC, _ := m.Mem.ReadWord(pcSaveAddr)

		m.Reg.AC = ac
		m.Reg.PC = restoredPC
		m.Reg.IE = true
		m.Reg.InISR = false
		m.fiCount++
		jumped = true

	case isa.OpNop:
		// no-op

	case isa.OpHlt:
		m.halted = true
	}

	m.ticks += info.Ticks

	if !jumped && !m.halted {
		m.Reg.PC = isa.Word(pc + isa.WordSize)
	}

	return nil
}
