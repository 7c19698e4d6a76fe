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

// Package vortex glues the asm and vm packages into the single entry point
// callers need: load a source file, then run it against an output sink.
package vortex

import (
	"io"
	"strings"

	"vortex/asm"
	"vortex/vm"
)

// Program is a parsed and linked vortex script, ready to run.
type Program struct {
	instructions []vm.Instruction
	entry        int
}

// Load reads and parses the script at path, resolving its entry point.
func Load(path string) (*Program, error) {
	p, err := asm.ParseFile(path)
	if err != nil {
		return nil, err
	}
	entry, err := asm.EntryPoint(p.Labels)
	if err != nil {
		return nil, err
	}
	return &Program{instructions: p.Instructions, entry: entry}, nil
}

// LoadString parses src as if it were the contents of a file named name,
// resolving its entry point. Used by tests.
func LoadString(name, src string) (*Program, error) {
	p, err := asm.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	entry, err := asm.EntryPoint(p.Labels)
	if err != nil {
		return nil, err
	}
	return &Program{instructions: p.Instructions, entry: entry}, nil
}

// Run executes the program, writing `print` output to w.
func (p *Program) Run(w io.Writer) error {
	m := vm.New(w)
	return m.Run(p.instructions, p.entry)
}

// RunCounting behaves like Run but also reports the number of instructions
// executed; used by the `-stats` CLI flag.
func (p *Program) RunCounting(w io.Writer) (instructionCount int64, err error) {
	m := vm.New(w)
	err = m.Run(p.instructions, p.entry)
	return m.InstructionCount(), err
}

// RunTraced executes the program like Run, additionally invoking trace
// before each instruction; used by the `-trace` CLI flag.
func (p *Program) RunTraced(w io.Writer, trace vm.Trace) (instructionCount int64, err error) {
	m := vm.New(w)
	err = m.RunTraced(p.instructions, p.entry, trace)
	return m.InstructionCount(), err
}

// Disassemble renders the resolved program as one mnemonic line per
// instruction.
func (p *Program) Disassemble() string {
	return vm.Disassemble(p.instructions)
}
