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

package debugger

import (
	"fmt"
	"strings"

	"github.com/tinyvm/tinyvm/pkg/isa"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

// Step lets the driver's stepping loop ask whether execution should
// pause: it does if a single-step break is pending, or if PC has
// reached a breakpoint.
func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, bp := range dbg.Breakpoints {
		if int(mc.Reg.PC) == bp.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

// PrintSource prints count source lines starting at the line bound to
// addr (a byte address), or reports that no instruction lives there.
func (dbg *Debugger) PrintSource(addr int, count int) {
	if dbg.SymTable == nil {
		fmt.Println("No symbol table loaded")
		return
	}

	wordAddr := addr / isa.WordSize

	line, ok := dbg.SymTable.Symbols[wordAddr]
	if !ok {
		fmt.Printf("No instruction found at %#08x\n", addr)
		return
	}

	lines := strings.Split(dbg.SymTable.Source, "\n")

	for i := 0; i < count && line-1+i < len(lines); i++ {
		lineNo := line + i
		text := lines[lineNo-1]

		if lineNo == line {
			fmt.Printf("\033[1m[%#08x]\033[0m %s\n", addr, text)
		} else {
			fmt.Printf("\033[1;30m%8s\033[0m %s\n", "", text)
		}
	}
}

// PrintLabels lists every known label and the byte address it is
// bound to, in ascending address order.
func (dbg *Debugger) PrintLabels() {
	if dbg.SymTable == nil {
		fmt.Println("No symbol table loaded")
		return
	}

	addrs := make([]int, 0, len(dbg.SymTable.Labels))
	for a := range dbg.SymTable.Labels {
		addrs = append(addrs, a)
	}

	for i := 0; i < len(addrs); i++ {
		for j := i + 1; j < len(addrs); j++ {
			if addrs[j] < addrs[i] {
				addrs[i], addrs[j] = addrs[j], addrs[i]
			}
		}
	}

	for _, a := range addrs {
		fmt.Printf(
			"\033[1m[%#08x]\033[0m %s\n",
			a*isa.WordSize, dbg.SymTable.Labels[a],
		)
	}
}

// PrintRegisters dumps the CPU's visible register state.
func PrintRegisters(reg machine.Registers) {
	fmt.Printf(
		"\033[1mAC:\033[0m %-12d \033[1mPC:\033[0m %#08x\n",
		reg.AC, reg.PC,
	)
	fmt.Printf(
		"\033[1mZ:\033[0m %-5v \033[1mN:\033[0m %-5v \033[1mIE:\033[0m %-5v \033[1mInISR:\033[0m %v\n",
		reg.Z, reg.N, reg.IE, reg.InISR,
	)
}

// PrintMem dumps count words of memory starting at byte address addr,
// four words per line.
func PrintMem(mem machine.Memory, addr, count int) {
	for i := 0; i < count; i++ {
		wordAddr := addr + i*isa.WordSize

		if i%4 == 0 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("\033[1m[%#08x]\033[0m ", wordAddr)
		}

		w, ok := mem.ReadWord(wordAddr)
		if !ok {
			fmt.Print("???????? ")
			continue
		}

		if w == 0 {
			fmt.Printf("\033[1;30m%#08x\033[0m ", uint32(w))
		} else {
			fmt.Printf("%#08x ", uint32(w))
		}
	}

	fmt.Println()
}
