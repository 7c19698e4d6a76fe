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
	"strings"

	"vortex/vm"
)

// Line is the classification of a single source line, shared by the
// whole-file parser and callers that feed lines in one at a time (the
// REPL). A blank or comment-only line classifies as nil, nil.
type Line struct {
	// Label is non-empty when this line is a label declaration.
	Label string
	// Mnemonic and Args are set when this line is an instruction.
	Mnemonic string
	Args     []string
}

// ParseLine classifies one already-read source line, stripping its comment
// and leading/trailing whitespace first.
func ParseLine(ctx vm.Context, raw string) (*Line, error) {
	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil, nil
	}
	if strings.HasSuffix(line, ":") {
		name := line[:len(line)-1]
		if !isIdentifier(name) {
			return nil, newParseError(ctx, InvalidLabel, "invalid label %q", name)
		}
		return &Line{Label: name}, nil
	}
	fields := strings.Fields(line)
	return &Line{Mnemonic: fields[0], Args: fields[1:]}, nil
}
