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

package vm

import "fmt"

// Context identifies the source position (file and 1-based line) that a
// resolved instruction originated from. It is kept around purely for
// diagnostics: runtime errors report the same "[file: line]" form as
// parse-time errors, so the originating Context rides along with every
// instruction even after linking.
type Context struct {
	Filename string
	Line     int
}

func (c Context) String() string {
	return fmt.Sprintf("%s: %d", c.Filename, c.Line)
}

// RuntimeErrorKind is the closed set of fatal conditions the dispatch loop
// can raise while executing an already-linked program.
type RuntimeErrorKind int

const (
	// StackUnderflow is raised by pop on an empty operand or call stack.
	StackUnderflow RuntimeErrorKind = iota
	// DivByZero is raised by integer div/mod with a zero divisor.
	DivByZero
	// OutputFailure is raised when print's sink rejects a write. It is
	// distinct from StackUnderflow/DivByZero because it originates outside
	// the VM's own arithmetic and stack discipline: the program itself did
	// nothing wrong, its output sink did.
	OutputFailure
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case StackUnderflow:
		return "StackUnderflow"
	case DivByZero:
		return "DivByZero"
	case OutputFailure:
		return "OutputFailure"
	default:
		return "unknown runtime error"
	}
}

// RuntimeError is a fatal condition encountered while executing an
// instruction. It aborts the dispatch loop; there is no recovery.
type RuntimeError struct {
	Ctx     Context
	Kind    RuntimeErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Ctx, e.Message)
}

func newRuntimeError(ctx Context, kind RuntimeErrorKind, msg string) *RuntimeError {
	return &RuntimeError{Ctx: ctx, Kind: kind, Message: msg}
}
