// Copyright 2025 Zintix Labs
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

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWrapKeepsLevel(t *testing.T) {
	base := NewWarn("bad line")
	w := Wrap(base, "parse suite")
	if w.ErrLv != Warn {
		t.Fatalf("expected warn level, got %s", w.ErrLv)
	}
	if !errors.Is(w, base) {
		t.Fatalf("expected wrapped error to unwrap to base")
	}

	f := Wrap(io.ErrUnexpectedEOF, "read")
	if f.ErrLv != Fatal {
		t.Fatalf("expected fatal for foreign cause, got %s", f.ErrLv)
	}
}

func TestMismatchLevelAndMessage(t *testing.T) {
	m := &Mismatch{Suite: "philox4x32", Inputs: "key=1,2;ctr=1,2,3,4", Index: 5, Lane: 1, Expected: 7, Actual: 8}
	if Level(m) != Warn {
		t.Fatalf("mismatch should be warn level")
	}
	w := Wrap(m, "verify")
	if w.ErrLv != Warn {
		t.Fatalf("wrapped mismatch should stay warn, got %s", w.ErrLv)
	}
	msg := m.Error()
	for _, part := range []string{"philox4x32", "draw=5", "lane=1", "expected=7", "actual=8"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("message %q missing %q", msg, part)
		}
	}
	var got *Mismatch
	if !errors.As(w, &got) || got.Index != 5 {
		t.Fatalf("errors.As should reach the mismatch")
	}
}

func TestLevelNil(t *testing.T) {
	if Level(nil) != None {
		t.Fatalf("nil error should have no level")
	}
	if _, ok := AsErr(io.EOF); ok {
		t.Fatalf("io.EOF is not *E")
	}
}
