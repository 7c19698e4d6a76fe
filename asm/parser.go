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

package asm

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"vortex/vm"
)

// rawInstruction is the pass-1 record: a mnemonic plus its unparsed argument
// tokens, tagged with the source position they came from. It exists only
// between the two passes.
type rawInstruction struct {
	ctx      vm.Context
	mnemonic string
	args     []string
}

// Program is the output of a successful Parse: a resolved instruction
// vector and the label table it was linked against.
type Program struct {
	Instructions []vm.Instruction
	Labels       *LabelTable
}

// Parse runs both passes over r, whose lines are attributed to filename for
// diagnostics, producing a resolved instruction vector and label table.
func Parse(filename string, r io.Reader) (*Program, error) {
	raws, labels, err := collectLabels(filename, r)
	if err != nil {
		return nil, err
	}
	instructions, err := link(raws, labels)
	if err != nil {
		return nil, err
	}
	return &Program{Instructions: instructions, Labels: labels}, nil
}

// ParseFile opens path and parses it, using path as the diagnostic
// filename.
func ParseFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Parse(path, f)
}

// collectLabels implements pass 1: strip comments, trim, recognize label
// declarations and raw instructions, and build the label table.
func collectLabels(filename string, r io.Reader) ([]rawInstruction, *LabelTable, error) {
	labels := NewLabelTable()
	var raws []rawInstruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ctx := vm.Context{Filename: filename, Line: lineNo}
		ln, err := ParseLine(ctx, scanner.Text())
		if err != nil {
			return nil, nil, err
		}
		if ln == nil {
			continue
		}
		if ln.Label != "" {
			if err := labels.Insert(ctx, ln.Label, len(raws)); err != nil {
				return nil, nil, err
			}
			continue
		}
		raws = append(raws, rawInstruction{ctx: ctx, mnemonic: ln.Mnemonic, args: ln.Args})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", filename)
	}
	return raws, labels, nil
}

// stripComment removes everything from the first ';' onward.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// link implements pass 2: resolve every raw instruction against the
// factory and the completed label table.
func link(raws []rawInstruction, labels *LabelTable) ([]vm.Instruction, error) {
	instructions := make([]vm.Instruction, 0, len(raws))
	for _, raw := range raws {
		build, err := lookupBuilder(raw.ctx, raw.mnemonic)
		if err != nil {
			return nil, err
		}
		args := NewArgReader(raw.ctx, raw.args, labels)
		instr, err := build(raw.ctx, args)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instr)
	}
	return instructions, nil
}

// EntryPoint looks up "main" in the label table, failing with
// MissingEntryPoint if absent.
func EntryPoint(labels *LabelTable) (int, error) {
	idx, ok := labels.Get("main")
	if !ok {
		return 0, newParseError(vm.Context{}, MissingEntryPoint, "no \"main\" label declared")
	}
	return idx, nil
}
