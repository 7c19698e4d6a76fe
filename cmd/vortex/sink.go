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

import "io"

// printSink wraps the io.Writer that `print` instructions write to and
// latches the first write error, returning it on every subsequent call
// instead of retrying the underlying writer. `vm.Print.Execute` already
// turns a failed write into an OutputFailure RuntimeError carrying the
// offending instruction's Context, so printSink itself stays a thin latch
// rather than re-wrapping the error a second time.
type printSink struct {
	w   io.Writer
	Err error
}

// newPrintSink wraps w.
func newPrintSink(w io.Writer) *printSink {
	return &printSink{w: w}
}

func (s *printSink) Write(p []byte) (n int, err error) {
	if s.Err != nil {
		return 0, s.Err
	}
	n, err = s.w.Write(p)
	if err != nil {
		s.Err = err
	}
	return n, s.Err
}
