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

import (
	"bytes"
	"testing"
)

func reg(t *testing.T, i int) Register {
	t.Helper()
	r, err := NewRegister(i)
	if err != nil {
		t.Fatalf("NewRegister(%d): %v", i, err)
	}
	return r
}

func TestVMRegisterReadWrite(t *testing.T) {
	m := New(nil)
	r3 := reg(t, 3)
	m.RegisterWrite(r3, 42)
	if got := m.RegisterRead(r3); got != 42 {
		t.Fatalf("RegisterRead = %v, want 42", got)
	}
}

func TestVMOperandStackLIFO(t *testing.T) {
	m := New(nil)
	m.PushOperand(1)
	m.PushOperand(2)
	m.PushOperand(3)
	for _, want := range []float64{3, 2, 1} {
		got, ok := m.PopOperand()
		if !ok || got != want {
			t.Fatalf("PopOperand = %v, %v; want %v, true", got, ok, want)
		}
	}
	if _, ok := m.PopOperand(); ok {
		t.Fatalf("PopOperand on empty stack returned ok=true")
	}
}

func TestVMCallStackSeparateFromOperandStack(t *testing.T) {
	m := New(nil)
	m.PushOperand(100)
	m.PushCall(7)
	if got := m.OperandDepth(); got != 1 {
		t.Fatalf("OperandDepth = %d, want 1", got)
	}
	if got := m.CallDepth(); got != 1 {
		t.Fatalf("CallDepth = %d, want 1", got)
	}
	pc, ok := m.PopCall()
	if !ok || pc != 7 {
		t.Fatalf("PopCall = %v, %v; want 7, true", pc, ok)
	}
	v, ok := m.PopOperand()
	if !ok || v != 100 {
		t.Fatalf("PopOperand = %v, %v; want 100, true", v, ok)
	}
}

func TestVMRunHaltsPastEnd(t *testing.T) {
	var out bytes.Buffer
	m := New(&out)
	ctx := Context{Filename: "t.vx", Line: 1}
	lit := NewLiteral(5)
	program := []Instruction{
		NewMov(ctx, reg(t, 0), lit),
		NewPrint(ctx, reg(t, 0)),
	}
	if err := m.Run(program, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "5\n" {
		t.Fatalf("output = %q, want %q", out.String(), "5\n")
	}
	if m.InstructionCount() != 2 {
		t.Fatalf("InstructionCount = %d, want 2", m.InstructionCount())
	}
}

func TestVMRunPropagatesRuntimeError(t *testing.T) {
	m := New(nil)
	ctx := Context{Filename: "t.vx", Line: 1}
	program := []Instruction{
		NewPop(ctx, reg(t, 0)),
	}
	err := m.Run(program, 0)
	if err == nil {
		t.Fatalf("Run returned nil error, want StackUnderflow")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("Run error = %T, want *RuntimeError", err)
	}
	if rerr.Kind != StackUnderflow {
		t.Fatalf("Kind = %v, want StackUnderflow", rerr.Kind)
	}
	if got, want := rerr.Error(), "[t.vx: 1] pop: operand stack underflow"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestVMRunTracedInvokesCallback(t *testing.T) {
	m := New(nil)
	ctx := Context{Filename: "t.vx", Line: 1}
	program := []Instruction{
		NewMov(ctx, reg(t, 0), NewLiteral(1)),
		NewMov(ctx, reg(t, 1), NewLiteral(2)),
	}
	var seen []int
	err := m.RunTraced(program, 0, func(pc int, instr Instruction) {
		seen = append(seen, pc)
	})
	if err != nil {
		t.Fatalf("RunTraced: %v", err)
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Fatalf("trace pcs = %v, want [0 1]", seen)
	}
}
