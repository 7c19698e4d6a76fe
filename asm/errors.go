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

// Package asm implements the two-pass parser/linker that turns vortex source
// text into a resolved instruction vector and a label table.
package asm

import (
	"fmt"

	"vortex/vm"
)

// ErrorKind is the closed set of parse-time diagnostics.
type ErrorKind int

const (
	// ExpectedRegister: an argument expected to be a register was not
	// r-prefixed.
	ExpectedRegister ErrorKind = iota
	// InvalidRegister: an r-prefixed token did not parse or its index was
	// out of range.
	InvalidRegister
	// ExpectedLiteral: an argument expected to be a literal did not parse
	// as a signed integer.
	ExpectedLiteral
	// ExpectedArgument: an instruction ran out of arguments.
	ExpectedArgument
	// UnexpectedArguments: an instruction has leftover arguments.
	UnexpectedArguments
	// UnknownLabel: a reference to a label not declared anywhere in the
	// file.
	UnknownLabel
	// InvalidLabel: a label name contains non-identifier characters.
	InvalidLabel
	// ConflictingLabel: a label was redeclared.
	ConflictingLabel
	// UnknownInstruction: a mnemonic not present in the factory.
	UnknownInstruction
	// MissingEntryPoint: no `main` label was declared.
	MissingEntryPoint
)

func (k ErrorKind) String() string {
	switch k {
	case ExpectedRegister:
		return "ExpectedRegister"
	case InvalidRegister:
		return "InvalidRegister"
	case ExpectedLiteral:
		return "ExpectedLiteral"
	case ExpectedArgument:
		return "ExpectedArgument"
	case UnexpectedArguments:
		return "UnexpectedArguments"
	case UnknownLabel:
		return "UnknownLabel"
	case InvalidLabel:
		return "InvalidLabel"
	case ConflictingLabel:
		return "ConflictingLabel"
	case UnknownInstruction:
		return "UnknownInstruction"
	case MissingEntryPoint:
		return "MissingEntryPoint"
	default:
		return "unknown parse error"
	}
}

// ParseError is a fatal condition encountered while parsing or linking a
// source file. It carries the ErrorKind for programmatic callers and a
// human-readable message for the "[file: line] message" diagnostic line.
type ParseError struct {
	Ctx     vm.Context
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Ctx, e.Message)
}

func newParseError(ctx vm.Context, kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Ctx: ctx, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
