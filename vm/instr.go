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
	"math"
	"strconv"
)

// equalEpsilon is the tolerance used by ifeq's symmetric absolute-difference
// test (design decision for open question Q1: |a-b| < epsilon, not the
// source's asymmetric a-b<epsilon).
const equalEpsilon = 1e-5

// --- mov ---

// Mov implements `mov dst, src`: dst <- resolve(src); pc++.
type Mov struct {
	Ctx Context
	Dst Register
	Src Value
}

// NewMov constructs a resolved `mov` instruction.
func NewMov(ctx Context, dst Register, src Value) *Mov {
	return &Mov{Ctx: ctx, Dst: dst, Src: src}
}

// Execute implements Instruction.
func (in *Mov) Execute(m *VM) error {
	m.RegisterWrite(in.Dst, in.Src.Resolve(m))
	m.NextPC++
	return nil
}

func (in *Mov) String() string { return "mov " + in.Dst.String() + " " + in.Src.String() }

// --- conditional skip (ifeq/ifneq/iflt/ifgt/iflteq/ifgteq) ---

// Predicate is a binary comparison over resolved operands.
type Predicate func(a, b float64) bool

// EqPredicate implements ifeq's symmetric absolute-difference test.
func EqPredicate(a, b float64) bool { return math.Abs(a-b) < equalEpsilon }

// NeqPredicate is the negation of EqPredicate.
func NeqPredicate(a, b float64) bool { return !EqPredicate(a, b) }

// LtPredicate implements iflt.
func LtPredicate(a, b float64) bool { return a < b }

// GtPredicate implements ifgt.
func GtPredicate(a, b float64) bool { return a > b }

// LteqPredicate implements iflteq.
func LteqPredicate(a, b float64) bool { return a < b || EqPredicate(a, b) }

// GteqPredicate implements ifgteq.
func GteqPredicate(a, b float64) bool { return a > b || EqPredicate(a, b) }

// CondSkip implements the conditional-skip idiom: it is never a jump to an
// address, it either falls through (pc += 1) when the predicate is true, or
// skips exactly one following instruction (pc += 2) when false.
type CondSkip struct {
	Ctx  Context
	Name string
	A, B Value
	Pred Predicate
}

// NewCondSkip constructs a resolved conditional-skip instruction. name is
// used only for disassembly (e.g. "ifeq").
func NewCondSkip(ctx Context, name string, a, b Value, pred Predicate) *CondSkip {
	return &CondSkip{Ctx: ctx, Name: name, A: a, B: b, Pred: pred}
}

// Execute implements Instruction.
func (in *CondSkip) Execute(m *VM) error {
	if in.Pred(in.A.Resolve(m), in.B.Resolve(m)) {
		m.NextPC++
	} else {
		m.NextPC += 2
	}
	return nil
}

func (in *CondSkip) String() string {
	return in.Name + " " + in.A.String() + " " + in.B.String()
}

// --- jmp / call / return ---

// Jmp implements `jmp L`: pc <- table[L]. The target is resolved to a valid
// instruction index at parse time.
type Jmp struct {
	Ctx    Context
	Target int
}

// NewJmp constructs a resolved `jmp` instruction.
func NewJmp(ctx Context, target int) *Jmp { return &Jmp{Ctx: ctx, Target: target} }

// Execute implements Instruction.
func (in *Jmp) Execute(m *VM) error {
	m.NextPC = in.Target
	return nil
}

func (in *Jmp) String() string { return "jmp " + strconv.Itoa(in.Target) }

// Call implements `call L`: push pc+1 onto the call stack, then pc <-
// table[L].
type Call struct {
	Ctx    Context
	Target int
}

// NewCall constructs a resolved `call` instruction.
func NewCall(ctx Context, target int) *Call { return &Call{Ctx: ctx, Target: target} }

// Execute implements Instruction.
func (in *Call) Execute(m *VM) error {
	m.PushCall(m.NextPC + 1)
	m.NextPC = in.Target
	return nil
}

func (in *Call) String() string { return "call " + strconv.Itoa(in.Target) }

// Return implements `return`: pc <- pop(call stack). Popping an empty call
// stack is a fatal StackUnderflow.
type Return struct {
	Ctx Context
}

// NewReturn constructs a resolved `return` instruction.
func NewReturn(ctx Context) *Return { return &Return{Ctx: ctx} }

// Execute implements Instruction.
func (in *Return) Execute(m *VM) error {
	pc, ok := m.PopCall()
	if !ok {
		return newRuntimeError(in.Ctx, StackUnderflow, "return: call stack underflow")
	}
	m.NextPC = pc
	return nil
}

func (in *Return) String() string { return "return" }

// --- integer arithmetic (add/sub/mul/div/mod/and/or/xor) ---

// IntOp computes an integer result from two int64 operands, returning a
// RuntimeError (without Ctx set — the caller fills it in) for conditions
// like division by zero.
type IntOp func(a, b int64) (int64, *RuntimeError)

// IntAdd implements `add`.
func IntAdd(a, b int64) (int64, *RuntimeError) { return a + b, nil }

// IntSub implements `sub`.
func IntSub(a, b int64) (int64, *RuntimeError) { return a - b, nil }

// IntMul implements `mul`.
func IntMul(a, b int64) (int64, *RuntimeError) { return a * b, nil }

// IntDiv implements `div`. Division by zero is a fatal runtime error.
func IntDiv(a, b int64) (int64, *RuntimeError) {
	if b == 0 {
		return 0, newRuntimeError(Context{}, DivByZero, "div: division by zero")
	}
	return a / b, nil
}

// IntMod implements `mod`. Division by zero is a fatal runtime error.
func IntMod(a, b int64) (int64, *RuntimeError) {
	if b == 0 {
		return 0, newRuntimeError(Context{}, DivByZero, "mod: division by zero")
	}
	return a % b, nil
}

// IntAnd implements `and`.
func IntAnd(a, b int64) (int64, *RuntimeError) { return a & b, nil }

// IntOr implements `or`.
func IntOr(a, b int64) (int64, *RuntimeError) { return a | b, nil }

// IntXor implements `xor`.
func IntXor(a, b int64) (int64, *RuntimeError) { return a ^ b, nil }

// IntArith implements the family of integer opcodes: let a = floor(dst),
// b = floor(src), dst <- (a OP b) as float64.
type IntArith struct {
	Ctx  Context
	Name string
	Dst  Register
	Src  Value
	Op   IntOp
}

// NewIntArith constructs a resolved integer-arithmetic instruction. name is
// used only for disassembly (e.g. "add").
func NewIntArith(ctx Context, name string, dst Register, src Value, op IntOp) *IntArith {
	return &IntArith{Ctx: ctx, Name: name, Dst: dst, Src: src, Op: op}
}

// Execute implements Instruction.
func (in *IntArith) Execute(m *VM) error {
	a := int64(math.Floor(m.RegisterRead(in.Dst)))
	b := int64(math.Floor(in.Src.Resolve(m)))
	r, rerr := in.Op(a, b)
	if rerr != nil {
		rerr.Ctx = in.Ctx
		return rerr
	}
	m.RegisterWrite(in.Dst, float64(r))
	m.NextPC++
	return nil
}

func (in *IntArith) String() string {
	return in.Name + " " + in.Dst.String() + " " + in.Src.String()
}

// --- floating arithmetic (addf/subf/mulf/divf) ---

// FloatOp computes dst OP src directly on float64s. divf by zero follows
// IEEE-754 (±Inf or NaN) without aborting.
type FloatOp func(a, b float64) float64

// FloatAdd implements `addf`.
func FloatAdd(a, b float64) float64 { return a + b }

// FloatSub implements `subf`.
func FloatSub(a, b float64) float64 { return a - b }

// FloatMul implements `mulf`.
func FloatMul(a, b float64) float64 { return a * b }

// FloatDiv implements `divf`.
func FloatDiv(a, b float64) float64 { return a / b }

// FloatArith implements the family of floating opcodes: dst <- (dst OP src).
type FloatArith struct {
	Ctx  Context
	Name string
	Dst  Register
	Src  Value
	Op   FloatOp
}

// NewFloatArith constructs a resolved floating-arithmetic instruction.
func NewFloatArith(ctx Context, name string, dst Register, src Value, op FloatOp) *FloatArith {
	return &FloatArith{Ctx: ctx, Name: name, Dst: dst, Src: src, Op: op}
}

// Execute implements Instruction.
func (in *FloatArith) Execute(m *VM) error {
	a := m.RegisterRead(in.Dst)
	b := in.Src.Resolve(m)
	m.RegisterWrite(in.Dst, in.Op(a, b))
	m.NextPC++
	return nil
}

func (in *FloatArith) String() string {
	return in.Name + " " + in.Dst.String() + " " + in.Src.String()
}

// --- stack / print ---

// Push implements `push v`: operand stack push resolve(v); pc++.
type Push struct {
	Ctx Context
	Src Value
}

// NewPush constructs a resolved `push` instruction.
func NewPush(ctx Context, src Value) *Push { return &Push{Ctx: ctx, Src: src} }

// Execute implements Instruction.
func (in *Push) Execute(m *VM) error {
	m.PushOperand(in.Src.Resolve(m))
	m.NextPC++
	return nil
}

func (in *Push) String() string { return "push " + in.Src.String() }

// Pop implements `pop dst`: dst <- operand stack pop; pc++. Popping an
// empty operand stack is a fatal StackUnderflow.
type Pop struct {
	Ctx Context
	Dst Register
}

// NewPop constructs a resolved `pop` instruction.
func NewPop(ctx Context, dst Register) *Pop { return &Pop{Ctx: ctx, Dst: dst} }

// Execute implements Instruction.
func (in *Pop) Execute(m *VM) error {
	v, ok := m.PopOperand()
	if !ok {
		return newRuntimeError(in.Ctx, StackUnderflow, "pop: operand stack underflow")
	}
	m.RegisterWrite(in.Dst, v)
	m.NextPC++
	return nil
}

func (in *Pop) String() string { return "pop " + in.Dst.String() }

// Print implements `print v`: write resolve(v) followed by a newline to the
// VM's output sink; pc++.
type Print struct {
	Ctx Context
	Src Value
}

// NewPrint constructs a resolved `print` instruction.
func NewPrint(ctx Context, src Value) *Print { return &Print{Ctx: ctx, Src: src} }

// Execute implements Instruction.
func (in *Print) Execute(m *VM) error {
	v := in.Src.Resolve(m)
	_, err := m.Output.Write([]byte(FormatScalar(v) + "\n"))
	if err != nil {
		return newRuntimeError(in.Ctx, OutputFailure, "print: "+err.Error())
	}
	m.NextPC++
	return nil
}

func (in *Print) String() string { return "print " + in.Src.String() }

// FormatScalar renders a VM scalar the way `print` does: integer-valued
// doubles print without a trailing decimal point (Q2), everything else uses
// the shortest round-tripping decimal representation.
func FormatScalar(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
