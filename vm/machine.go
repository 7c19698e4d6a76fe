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

// Package vm implements the vortex virtual machine: the closed instruction
// set and the dispatch loop that drives it over a fixed bank of 16
// double-precision registers, an operand stack and a call stack kept
// logically separate so that user pushes survive across call/return.
package vm

import (
	"fmt"
	"io"
)

// stackCapacityHint sizes the initial backing array for the operand and call
// stacks to avoid reallocations for typical programs; depth is otherwise
// unbounded (the runtime-error taxonomy has no stack-overflow kind).
const stackCapacityHint = 4096

// Instruction is the closed, tagged family of vortex operations. Each
// resolved instruction owns its operand Values and is immutable after
// construction; Execute is the single uniform contract every variant
// implements, and it alone is responsible for advancing the VM's program
// counter — there is no implicit post-increment in the dispatch loop.
type Instruction interface {
	Execute(m *VM) error
	String() string
}

// VM is a single vortex virtual machine instance: its register bank,
// operand stack, call stack and program counter. It owns its stacks and
// registers; the instruction vector it executes is borrowed, never
// modified.
type VM struct {
	// NextPC is the program counter. Instructions read and write it
	// directly as part of Execute.
	NextPC int

	registers [NumRegisters]float64
	operands  []float64
	calls     []int

	// Output is the sink for `print`. Defaults to io.Discard if nil when
	// Run is called.
	Output io.Writer

	insCount int64
}

// New creates a fresh VM with all registers zeroed and empty stacks.
func New(output io.Writer) *VM {
	return &VM{
		operands: make([]float64, 0, stackCapacityHint),
		calls:    make([]int, 0, stackCapacityHint),
		Output:   output,
	}
}

// InstructionCount returns the number of instructions executed so far by the
// most recent (or current) call to Run.
func (m *VM) InstructionCount() int64 { return m.insCount }

// RegisterRead returns the current content of r.
func (m *VM) RegisterRead(r Register) float64 { return m.registers[r.index] }

// RegisterWrite stores v into r.
func (m *VM) RegisterWrite(r Register, v float64) { m.registers[r.index] = v }

// PushOperand pushes v onto the operand stack.
func (m *VM) PushOperand(v float64) { m.operands = append(m.operands, v) }

// PopOperand pops and returns the top of the operand stack. ok is false on
// an empty stack; the caller (an Instruction) is responsible for turning
// that into a RuntimeError carrying its own Context.
func (m *VM) PopOperand() (v float64, ok bool) {
	n := len(m.operands)
	if n == 0 {
		return 0, false
	}
	v = m.operands[n-1]
	m.operands = m.operands[:n-1]
	return v, true
}

// PushCall pushes a return address onto the call stack.
func (m *VM) PushCall(pc int) { m.calls = append(m.calls, pc) }

// PopCall pops and returns the top of the call stack. ok is false on an
// empty stack.
func (m *VM) PopCall() (pc int, ok bool) {
	n := len(m.calls)
	if n == 0 {
		return 0, false
	}
	pc = m.calls[n-1]
	m.calls = m.calls[:n-1]
	return pc, true
}

// OperandDepth returns the number of values currently on the operand stack.
func (m *VM) OperandDepth() int { return len(m.operands) }

// CallDepth returns the number of return addresses currently on the call
// stack.
func (m *VM) CallDepth() int { return len(m.calls) }

// Run executes instructions starting at entryPC until NextPC reaches
// len(instructions). A jmp or return landing past the end of the vector is
// equivalent to normal termination; any RuntimeError aborts the loop
// immediately and is returned to the caller.
func (m *VM) Run(instructions []Instruction, entryPC int) error {
	if m.Output == nil {
		m.Output = io.Discard
	}
	m.NextPC = entryPC
	m.insCount = 0
	for m.NextPC >= 0 && m.NextPC < len(instructions) {
		instr := instructions[m.NextPC]
		if err := instr.Execute(m); err != nil {
			return err
		}
		m.insCount++
	}
	return nil
}

// Trace, when non-nil, is invoked by RunTraced before executing each
// instruction; used by the optional `-trace` CLI flag.
type Trace func(pc int, instr Instruction)

// RunTraced behaves like Run but invokes trace before executing each
// instruction, if trace is non-nil.
func (m *VM) RunTraced(instructions []Instruction, entryPC int, trace Trace) error {
	if m.Output == nil {
		m.Output = io.Discard
	}
	m.NextPC = entryPC
	m.insCount = 0
	for m.NextPC >= 0 && m.NextPC < len(instructions) {
		instr := instructions[m.NextPC]
		if trace != nil {
			trace(m.NextPC, instr)
		}
		if err := instr.Execute(m); err != nil {
			return err
		}
		m.insCount++
	}
	return nil
}

func (m *VM) String() string {
	return fmt.Sprintf("pc=%d registers=%v operands=%v calls=%v", m.NextPC, m.registers, m.operands, m.calls)
}
