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
	"github.com/tinyvm/tinyvm/pkg/image"
)

var helpvar bool
var debugvar bool
var outvar string

const usage = "tinyvm-asm [-g] [-o outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&debugvar, "g", false,
		"Generates a gob-encoded symbol table alongside the image, "+
			"using the output filename with extension '.sym'",
	)
	flag.StringVar(
		&outvar, "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

func tinyvmAsm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var input io.Reader

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		input = os.Stdin
		log.SetPrefix("\033[1m<stdin>:\033[0m ")

		if outvar == "" {
			outvar = "out.img"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])
		if err != nil {
			log.Println(err)
			return 1
		}
		defer file.Close()

		filename := filepath.Base(file.Name())
		input = file
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m ", filename))

		if outvar == "" {
			outvar = strings.ReplaceAll(filename, filepath.Ext(filename), ".img")
		}
	}

	source, err := io.ReadAll(input)
	if err != nil {
		log.Println(err)
		return 1
	}

	img, symtab, errs := assembler.Assemble(string(source))
	if len(errs) > 0 {
		for _, err := range errs {
			if pe, ok := err.(assembler.PositionedError); ok {
				log.Printf("%d:%d: %s", pe.GetPosition().Line, pe.GetPosition().Column, err)
			} else {
				log.Println(err)
			}
		}
		return 1
	}

	data, err := image.Marshal(img)
	if err != nil {
		log.Println(err)
		return 1
	}

	if err := os.WriteFile(outvar, data, 0666); err != nil {
		log.Println(err)
		return 1
	}

	if debugvar {
		symfile := strings.ReplaceAll(outvar, filepath.Ext(outvar), ".sym")

		encoded, err := symtab.Encode()
		if err != nil {
			log.Println(err)
			return 1
		}

		if err := os.WriteFile(symfile, encoded, 0666); err != nil {
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(tinyvmAsm())
}
