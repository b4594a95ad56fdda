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

package core

import (
	"slices"
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
	c3 := New(Default().New(8))
	if c1.Uint64() == c3.Uint64() {
		t.Fatalf("different seeds should give different streams")
	}
}

func TestCorePickAndShuffle(t *testing.T) {
	c := New(Default().New(9))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}
	if got := c.Pick([]int{4}); got != 4 {
		t.Fatalf("single element pick, got %d", got)
	}

	src := []int{1, 2, 3, 4}
	c.ShuffleInts(src)
	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal([]int{1, 2, 3, 4}, got) {
		t.Fatalf("shuffle changed elements: %v", src)
	}
}

func TestBounds(t *testing.T) {
	c := New(Default().New(3))
	if c.IntN(0) != -1 || c.IntN(-5) != -1 {
		t.Fatalf("non-positive max should return -1")
	}
	if c.UintN(0) != 0 {
		t.Fatalf("zero max should return 0")
	}
	for i := 0; i < 10000; i++ {
		if v := c.IntN(7); v < 0 || v >= 7 {
			t.Fatalf("IntN out of range: %d", v)
		}
		if v := c.UintN(8); v >= 8 {
			t.Fatalf("UintN out of range: %d", v)
		}
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestSplitStreamsDiffer(t *testing.T) {
	a := Split(11, 0)
	b := Split(11, 1)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same > 0 {
		t.Fatalf("sub-streams should not collide, got %d equal draws", same)
	}
	if first := Split(11, 0).Uint64(); first != NewPhilox(11, 0).Uint64() {
		t.Fatalf("Split(seed, 0) should equal the default stream")
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := NewPhilox(5, 2)
	r.Uint64()
	r.Skip(9)
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{r.Uint64(), r.Uint64(), r.Uint64()}

	q := NewPhilox(0, 0)
	if err := q.Restore(snap); err != nil {
		t.Fatal(err)
	}
	for i, w := range want {
		if got := q.Uint64(); got != w {
			t.Fatalf("restored draw %d: want %d, got %d", i, w, got)
		}
	}
}
