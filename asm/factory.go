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

import "vortex/vm"

// builder constructs one resolved instruction from its argument reader. It
// is responsible for calling ExpectEndOfArgs once all of its operands have
// been consumed.
type builder func(ctx vm.Context, args *ArgReader) (vm.Instruction, error)

// factory is the process-wide, read-only mnemonic-to-builder table. It is
// populated once at package init and never mutated afterward.
var factory = map[string]builder{
	"mov":    buildMov,
	"jmp":    buildJmp,
	"call":   buildCall,
	"return": buildReturn,
	"push":   buildPush,
	"pop":    buildPop,
	"print":  buildPrint,

	"ifeq":   condSkipBuilder("ifeq", vm.EqPredicate),
	"ifneq":  condSkipBuilder("ifneq", vm.NeqPredicate),
	"iflt":   condSkipBuilder("iflt", vm.LtPredicate),
	"ifgt":   condSkipBuilder("ifgt", vm.GtPredicate),
	"iflteq": condSkipBuilder("iflteq", vm.LteqPredicate),
	"ifgteq": condSkipBuilder("ifgteq", vm.GteqPredicate),

	"add": intArithBuilder("add", vm.IntAdd),
	"sub": intArithBuilder("sub", vm.IntSub),
	"mul": intArithBuilder("mul", vm.IntMul),
	"div": intArithBuilder("div", vm.IntDiv),
	"mod": intArithBuilder("mod", vm.IntMod),
	"and": intArithBuilder("and", vm.IntAnd),
	"or":  intArithBuilder("or", vm.IntOr),
	"xor": intArithBuilder("xor", vm.IntXor),

	"addf": floatArithBuilder("addf", vm.FloatAdd),
	"subf": floatArithBuilder("subf", vm.FloatSub),
	"mulf": floatArithBuilder("mulf", vm.FloatMul),
	"divf": floatArithBuilder("divf", vm.FloatDiv),
}

// lookupBuilder returns the builder for mnemonic, or UnknownInstruction.
func lookupBuilder(ctx vm.Context, mnemonic string) (builder, error) {
	b, ok := factory[mnemonic]
	if !ok {
		return nil, newParseError(ctx, UnknownInstruction, "unknown instruction %q", mnemonic)
	}
	return b, nil
}

// BuildInstruction resolves a single mnemonic and its argument tokens
// against labels, the same way pass 2 of Parse does for one raw
// instruction. It lets callers that maintain their own incremental label
// table and instruction vector (the REPL) reuse the factory directly.
func BuildInstruction(ctx vm.Context, mnemonic string, args []string, labels *LabelTable) (vm.Instruction, error) {
	build, err := lookupBuilder(ctx, mnemonic)
	if err != nil {
		return nil, err
	}
	return build(ctx, NewArgReader(ctx, args, labels))
}

func buildMov(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	dst, err := args.ExpectRegister()
	if err != nil {
		return nil, err
	}
	src, err := args.ExpectValue()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewMov(ctx, dst, src), nil
}

func buildJmp(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	target, err := args.ExpectLabelLocation()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewJmp(ctx, target), nil
}

func buildCall(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	target, err := args.ExpectLabelLocation()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewCall(ctx, target), nil
}

func buildReturn(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewReturn(ctx), nil
}

func buildPush(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	src, err := args.ExpectValue()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewPush(ctx, src), nil
}

func buildPop(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	dst, err := args.ExpectRegister()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewPop(ctx, dst), nil
}

func buildPrint(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
	src, err := args.ExpectValue()
	if err != nil {
		return nil, err
	}
	if err := args.ExpectEndOfArgs(); err != nil {
		return nil, err
	}
	return vm.NewPrint(ctx, src), nil
}

func condSkipBuilder(name string, pred vm.Predicate) builder {
	return func(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
		a, err := args.ExpectValue()
		if err != nil {
			return nil, err
		}
		b, err := args.ExpectValue()
		if err != nil {
			return nil, err
		}
		if err := args.ExpectEndOfArgs(); err != nil {
			return nil, err
		}
		return vm.NewCondSkip(ctx, name, a, b, pred), nil
	}
}

func intArithBuilder(name string, op vm.IntOp) builder {
	return func(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
		dst, err := args.ExpectRegister()
		if err != nil {
			return nil, err
		}
		src, err := args.ExpectValue()
		if err != nil {
			return nil, err
		}
		if err := args.ExpectEndOfArgs(); err != nil {
			return nil, err
		}
		return vm.NewIntArith(ctx, name, dst, src, op), nil
	}
}

func floatArithBuilder(name string, op vm.FloatOp) builder {
	return func(ctx vm.Context, args *ArgReader) (vm.Instruction, error) {
		dst, err := args.ExpectRegister()
		if err != nil {
			return nil, err
		}
		src, err := args.ExpectValue()
		if err != nil {
			return nil, err
		}
		if err := args.ExpectEndOfArgs(); err != nil {
			return nil, err
		}
		return vm.NewFloatArith(ctx, name, dst, src, op), nil
	}
}
