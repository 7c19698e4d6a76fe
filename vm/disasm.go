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
	"fmt"
	"strings"
)

// Disassemble renders a resolved instruction vector back into one mnemonic
// line per instruction, prefixed with its index. Jump targets are printed as
// raw indices rather than recovered label names: Disassemble receives only
// the instruction vector, not the label table, so it only ever sees
// addresses.
func Disassemble(instructions []Instruction) string {
	var b strings.Builder
	for i, instr := range instructions {
		fmt.Fprintf(&b, "%4d  %s\n", i, instr.String())
	}
	return b.String()
}
