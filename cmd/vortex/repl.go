// This file is part of vortex.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"vortex/asm"
	"vortex/vm"
)

// runREPL reads vortex statements from stdin one line at a time, linking
// each against a persistent label table and instruction tail and executing
// newly appended instructions against a persistent VM. Raw/cbreak mode is
// used only so Ctrl-D ends the session without a trailing newline; it is
// torn down on exit regardless of how the loop ends.
func runREPL() {
	tearDown, _ := setRawIO()
	if tearDown != nil {
		defer tearDown()
	}

	out := newPrintSink(os.Stdout)
	m := vm.New(out)
	labels := asm.NewLabelTable()
	var instructions []vm.Instruction
	lineNo := 0

	r := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "vortex> ")
		text, err := r.ReadString('\n')
		if err != nil && text == "" {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			break
		}
		lineNo++
		ctx := vm.Context{Filename: "<repl>", Line: lineNo}

		ln, perr := asm.ParseLine(ctx, text)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "%v\n", perr)
			continue
		}
		if ln == nil {
			continue
		}
		if ln.Label != "" {
			if err := labels.Insert(ctx, ln.Label, len(instructions)); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			continue
		}

		instr, berr := asm.BuildInstruction(ctx, ln.Mnemonic, ln.Args, labels)
		if berr != nil {
			fmt.Fprintf(os.Stderr, "%v\n", berr)
			continue
		}
		start := len(instructions)
		instructions = append(instructions, instr)

		if rerr := m.Run(instructions, start); rerr != nil {
			fmt.Fprintf(os.Stderr, "%v\n", rerr)
		}
	}
	if out.Err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", out.Err)
	}
}
