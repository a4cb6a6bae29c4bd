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

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tinyvm/tinyvm/pkg/debugger"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

var lastcmd []string
var shouldexit bool

func debugBreak(dbg *debugger.Debugger, args []string) {
	const usage = "break [add #|list|remove #|clear]"

	if len(args) == 0 {
		args = []string{"list"}
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := strconv.ParseInt(args[0], 0, 64)
		if err != nil {
			log.Println(err)
			return
		}

		dbg.Breakpoints = append(dbg.Breakpoints, debugger.Breakpoint{Addr: int(addr)})
		fmt.Printf("Breakpoint added [%#08x]\n", addr)

	case "l", "ls", "list":
		for i, bp := range dbg.Breakpoints {
			fmt.Printf("#%d: %#08x\n", i, bp.Addr)
		}

	case "r", "rm", "remove":
		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])
		if err != nil || i < 0 || i >= len(dbg.Breakpoints) {
			log.Println("Invalid breakpoint number")
			return
		}

		dbg.Breakpoints = append(dbg.Breakpoints[:i], dbg.Breakpoints[i+1:]...)

	case "clear":
		dbg.Breakpoints = nil

	default:
		log.Printf("break: '%s' is not a valid command\n", cmd)
	}
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	exitRawTerm()
	defer enterRawTerm()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			shouldexit = true
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = args
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "r", "reg", "register", "registers":
			debugger.PrintRegisters(mc.Reg)

		case "s", "src", "source":
			count := 5
			if len(args) == 1 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					count = n
				}
			}
			dbg.PrintSource(int(mc.Reg.PC), count)

		case "l", "label", "labels":
			dbg.PrintLabels()

		case "m", "mem", "memory":
			addr := int(mc.Reg.PC)
			count := 4
			if len(args) > 0 {
				if n, err := strconv.ParseInt(args[0], 0, 64); err == nil {
					addr = int(n)
				}
			}
			if len(args) > 1 {
				if n, err := strconv.Atoi(args[1]); err == nil {
					count = n
				}
			}
			debugger.PrintMem(mc.Mem, addr, count)

		case "c", "continue":
			dbg.Break = false
			return

		case "n", "next":
			dbg.Break = true
			return

		case "q", "quit", "exit":
			shouldexit = true
			return

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if !dbg.Break {
		fmt.Println()
		fmt.Println("Program stopped")
		dbg.PrintSource(int(mc.Reg.PC), 5)
	}
	debugREPL(dbg, mc)
}
