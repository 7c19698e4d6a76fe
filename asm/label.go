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

// LabelTable maps a label name to the instruction index it designates.
// Insertion order is irrelevant and never iterated.
type LabelTable struct {
	byName map[string]int
}

// NewLabelTable returns an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{byName: make(map[string]int)}
}

// Insert records name -> index. It fails with ConflictingLabel if name is
// already present.
func (t *LabelTable) Insert(ctx vm.Context, name string, index int) error {
	if _, exists := t.byName[name]; exists {
		return newParseError(ctx, ConflictingLabel, "label %q redeclared", name)
	}
	t.byName[name] = index
	return nil
}

// Get looks up name, returning ok=false if absent.
func (t *LabelTable) Get(name string) (index int, ok bool) {
	index, ok = t.byName[name]
	return index, ok
}

// isIdentifier reports whether s is a non-empty run of letters, digits or
// underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isIdentifierRune(r) {
			return false
		}
	}
	return true
}

func isIdentifierRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
