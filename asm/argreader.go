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
	"strconv"
	"strings"

	"vortex/vm"
)

// ArgReader consumes the argument tokens of a single raw instruction in
// order, against a read-only view of the completed label table. Every
// failure carries the instruction's originating Context.
type ArgReader struct {
	ctx    vm.Context
	args   []string
	pos    int
	labels *LabelTable
}

// NewArgReader binds a reader to one instruction's arguments.
func NewArgReader(ctx vm.Context, args []string, labels *LabelTable) *ArgReader {
	return &ArgReader{ctx: ctx, args: args, labels: labels}
}

func (r *ArgReader) next() (string, bool) {
	if r.pos >= len(r.args) {
		return "", false
	}
	tok := r.args[r.pos]
	r.pos++
	return tok, true
}

// ExpectRegister consumes the next token as a register reference.
func (r *ArgReader) ExpectRegister() (vm.Register, error) {
	tok, ok := r.next()
	if !ok {
		return vm.Register{}, newParseError(r.ctx, ExpectedArgument, "expected register, got end of arguments")
	}
	return r.parseRegister(tok)
}

func (r *ArgReader) parseRegister(tok string) (vm.Register, error) {
	if !strings.HasPrefix(tok, "r") {
		return vm.Register{}, newParseError(r.ctx, ExpectedRegister, "expected register (r<n>), got %q", tok)
	}
	digits := tok[1:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return vm.Register{}, newParseError(r.ctx, InvalidRegister, "invalid register %q", tok)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return vm.Register{}, newParseError(r.ctx, InvalidRegister, "invalid register %q", tok)
	}
	reg, err := vm.NewRegister(n)
	if err != nil {
		return vm.Register{}, newParseError(r.ctx, InvalidRegister, "invalid register %q: %v", tok, err)
	}
	return reg, nil
}

// ExpectLiteral consumes the next token as a signed decimal literal.
func (r *ArgReader) ExpectLiteral() (vm.Literal, error) {
	tok, ok := r.next()
	if !ok {
		return vm.Literal{}, newParseError(r.ctx, ExpectedArgument, "expected literal, got end of arguments")
	}
	return r.parseLiteral(tok)
}

func (r *ArgReader) parseLiteral(tok string) (vm.Literal, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return vm.Literal{}, newParseError(r.ctx, ExpectedLiteral, "expected literal integer, got %q", tok)
	}
	return vm.NewLiteral(n), nil
}

// ExpectValue consumes the next token as a Value: register if r-prefixed,
// otherwise a literal.
func (r *ArgReader) ExpectValue() (vm.Value, error) {
	tok, ok := r.next()
	if !ok {
		return nil, newParseError(r.ctx, ExpectedArgument, "expected value, got end of arguments")
	}
	if strings.HasPrefix(tok, "r") {
		return r.parseRegister(tok)
	}
	return r.parseLiteral(tok)
}

// ExpectLabelLocation consumes the next token, looks it up in the label
// table, and returns its resolved instruction index.
func (r *ArgReader) ExpectLabelLocation() (int, error) {
	tok, ok := r.next()
	if !ok {
		return 0, newParseError(r.ctx, ExpectedArgument, "expected label, got end of arguments")
	}
	idx, found := r.labels.Get(tok)
	if !found {
		return 0, newParseError(r.ctx, UnknownLabel, "unknown label %q", tok)
	}
	return idx, nil
}

// ExpectEndOfArgs fails with UnexpectedArguments if tokens remain.
func (r *ArgReader) ExpectEndOfArgs() error {
	if r.pos < len(r.args) {
		return newParseError(r.ctx, UnexpectedArguments, "unexpected arguments: %s", strings.Join(r.args[r.pos:], " "))
	}
	return nil
}
