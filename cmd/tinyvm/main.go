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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinyvm/tinyvm/pkg/assembler"
	"github.com/tinyvm/tinyvm/pkg/debugger"
	"github.com/tinyvm/tinyvm/pkg/image"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

var helpvar bool
var debugvar bool
var inport int
var outport int
var maxticks int

const usage = "tinyvm [-debug] [-in port] [-out port] [-ticks n] filename.img"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.IntVar(&inport, "in", 13, "Port fed with bytes read from stdin before the run starts")
	flag.IntVar(&outport, "out", 3, "Port whose output bytes are written to stdout")
	flag.IntVar(&maxticks, "ticks", 1000000, "Maximum tick budget for the run")
	flag.Parse()
}

func tinyvm() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()
	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Println(err)
		return 1
	}

	img, err := image.Unmarshal(data)
	if err != nil {
		log.Println(err)
		return 1
	}

	ports := machine.PortSchedule{}

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Println(err)
			return 1
		}

		for _, b := range stdin {
			ports[inport] = append(ports[inport], machine.ScheduledByte{Tick: 0, Value: b})
		}
	}

	mc := machine.New(img, ports, machine.DefaultDataRegion)

	var dbg debugger.Debugger

	if debugvar {
		symfile := strings.ReplaceAll(args[0], filepath.Ext(args[0]), ".sym")

		if symdata, err := os.ReadFile(symfile); err == nil {
			symtab, err := assembler.DecodeSymTable(symdata)
			if err != nil {
				log.Println("Error loading symbol file")
				log.Println(err)
			} else {
				dbg.SymTable = symtab
			}
		}

		dbg.HandleBreak = handleBreak
		dbg.Break = true
	}

	enterRawTerm()
	defer exitRawTerm()

	for !shouldexit && !mc.Halted() && mc.Ticks() < maxticks {
		if debugvar {
			dbg.Step(mc)
			if shouldexit {
				break
			}
		}

		if ferr := mc.Step(); ferr != nil {
			fmt.Fprintln(os.Stderr, ferr)
			break
		}

		if out := mc.Ports[outport]; out != nil && len(out.Out) > 0 {
			os.Stdout.Write(out.Out)
			out.Out = nil
		}
	}

	return 0
}

func main() {
	os.Exit(tinyvm())
}
