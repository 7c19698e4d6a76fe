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

package main

import (
	"bytes"
	"errors"
	"testing"
)

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestPrintSinkPassesThroughOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newPrintSink(&buf)
	if _, err := s.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "hello" {
		t.Fatalf("buf = %q, want %q", buf.String(), "hello")
	}
}

func TestPrintSinkLatchesFirstError(t *testing.T) {
	boom := errors.New("boom")
	s := newPrintSink(failingWriter{err: boom})
	_, err1 := s.Write([]byte("a"))
	if err1 != boom {
		t.Fatalf("first Write error = %v, want %v", err1, boom)
	}
	_, err2 := s.Write([]byte("b"))
	if err2 != err1 {
		t.Fatalf("second Write returned a different error: %v vs %v", err2, err1)
	}
}
