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
	"flag"
	"fmt"
	"os"

	"vortex/lang/vortex"
	"vortex/vm"
)

const synopsis = `usage:
  vortex <script-path>
  vortex help
  vortex -repl
`

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func main() {
	trace := flag.Bool("trace", false, "print each executed instruction's pc and mnemonic to stderr")
	stats := flag.Bool("stats", false, "print the executed instruction count to stderr upon exit")
	repl := flag.Bool("repl", false, "start an interactive read-eval-print loop")
	flag.Parse()

	if *repl {
		runREPL()
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprint(os.Stderr, synopsis)
		os.Exit(1)
	}
	if args[0] == "help" {
		fmt.Fprint(os.Stdout, synopsis)
		return
	}

	program, err := vortex.Load(args[0])
	if err != nil {
		atExit(err)
		return
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()
	out := newPrintSink(stdout)

	var count int64
	if *trace {
		count, err = program.RunTraced(out, traceToStderr)
	} else {
		count, err = program.RunCounting(out)
	}
	stdout.Flush()
	if *stats {
		fmt.Fprintf(os.Stderr, "executed %d instructions\n", count)
	}
	atExit(err)
}

func traceToStderr(pc int, instr vm.Instruction) {
	fmt.Fprintf(os.Stderr, "%4d  %s\n", pc, instr.String())
}
