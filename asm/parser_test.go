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
	"bytes"
	"strings"
	"testing"

	"vortex/vm"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse("t.vx", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p
}

func TestParseForwardLabelReference(t *testing.T) {
	p := mustParse(t, `
main:
jmp later
print 999
later:
print 1
`)
	idx, ok := p.Labels.Get("later")
	if !ok || idx != 2 {
		t.Fatalf("later = %v, %v; want 2, true", idx, ok)
	}
	m := vm.New(&bytes.Buffer{})
	entry, err := EntryPoint(p.Labels)
	if err != nil {
		t.Fatalf("EntryPoint: %v", err)
	}
	var out bytes.Buffer
	m.Output = &out
	if err := m.Run(p.Instructions, entry); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("output = %q, want %q", out.String(), "1\n")
	}
}

func TestParseConflictingLabelIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader(`
foo:
print 1
foo:
print 2
`))
	if err == nil {
		t.Fatalf("Parse returned nil error, want ConflictingLabel")
	}
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ConflictingLabel {
		t.Fatalf("error = %v, want ConflictingLabel", err)
	}
}

func TestParseUnknownInstructionIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("frobnicate r0 1\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnknownInstruction {
		t.Fatalf("error = %v, want UnknownInstruction", err)
	}
}

func TestParseUnknownLabelIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("jmp nowhere\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnknownLabel {
		t.Fatalf("error = %v, want UnknownLabel", err)
	}
}

func TestParseInvalidLabelIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("bad label:\nprint 1\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != InvalidLabel {
		t.Fatalf("error = %v, want InvalidLabel", err)
	}
}

func TestParseUnexpectedArgumentsIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("return now\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnexpectedArguments {
		t.Fatalf("error = %v, want UnexpectedArguments", err)
	}
}

func TestParseExpectedArgumentIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("mov r0\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ExpectedArgument {
		t.Fatalf("error = %v, want ExpectedArgument", err)
	}
}

func TestParseInvalidRegisterIsFatal(t *testing.T) {
	_, err := Parse("t.vx", strings.NewReader("mov r99 1\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != InvalidRegister {
		t.Fatalf("error = %v, want InvalidRegister", err)
	}
}

func TestEntryPointMissingIsFatal(t *testing.T) {
	p := mustParse(t, "print 1\n")
	_, err := EntryPoint(p.Labels)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != MissingEntryPoint {
		t.Fatalf("error = %v, want MissingEntryPoint", err)
	}
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	p := mustParse(t, `
; a comment
main:
   ; indented comment
print 1 ; trailing comment

`)
	if len(p.Instructions) != 1 {
		t.Fatalf("len(Instructions) = %d, want 1", len(p.Instructions))
	}
}

func TestParseLabelIndexesNextInstruction(t *testing.T) {
	p := mustParse(t, `
print 1
foo:
print 2
`)
	idx, ok := p.Labels.Get("foo")
	if !ok || idx != 1 {
		t.Fatalf("foo = %v, %v; want 1, true", idx, ok)
	}
}

func TestDiagnosticFormat(t *testing.T) {
	_, err := Parse("prog.vx", strings.NewReader("jmp nowhere\n"))
	if err == nil {
		t.Fatalf("Parse returned nil error")
	}
	want := "[prog.vx: 1] unknown label \"nowhere\""
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
