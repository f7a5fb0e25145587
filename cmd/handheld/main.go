// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/handheld/emulator"
	"github.com/ezrec/handheld/translate"
)

// defines collects -D NAME=VALUE assembler predefines.
type defines map[string]string

func (d defines) String() string {
	var out []string
	for equ, value := range d {
		out = append(out, equ+"="+value)
	}
	return strings.Join(out, ",")
}

func (d defines) Set(text string) error {
	equ, value, ok := strings.Cut(text, "=")
	if !ok || len(equ) == 0 {
		return fmt.Errorf("%v: expected NAME=VALUE", text)
	}
	d[equ] = value
	return nil
}

func main() {
	var input string
	var part int
	var listing bool
	var lang string
	var verbose bool
	predefines := defines{}

	flag.StringVar(&input, "i", "-", "Boot code listing")
	flag.IntVar(&part, "p", 0, "Report only part 1 (loop) or part 2 (repair)")
	flag.BoolVar(&listing, "l", false, "Print the repaired listing")
	flag.StringVar(&lang, "lang", "", "Message locale, overriding the system locale")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(predefines, "D", "Predefine an equate, as NAME=VALUE")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Predefines = predefines

	if input == "-" {
		err := emu.Load(os.Stdin)
		if err != nil {
			log.Fatalf("stdin: %v", err)
		}
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()

		err = emu.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	if part == 0 || part == 1 {
		acc, err := emu.Loop()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("loop: %d\n", acc)
	}

	if part == 0 || part == 2 {
		fix, err := emu.Repair()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("repair: %d\n", fix.Acc)

		if listing {
			fmt.Print(emu.Program.String())
		}
	}
}
