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

package golden_test

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/golden"
)

const testdata = "testdata"

func loadTestdata(t *testing.T) golden.Set {
	t.Helper()
	set, err := golden.LoadDir(testdata)
	if err != nil {
		t.Fatalf("load testdata: %v", err)
	}
	return set
}

func TestTestdataVerifies(t *testing.T) {
	set := loadTestdata(t)
	if got := len(set.Suites()); got != len(golden.Suites()) {
		t.Fatalf("expected %d suites, got %d", len(golden.Suites()), got)
	}
	rep, err := golden.VerifyAll(context.Background(), set, 4, false)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("verify failed: %v\n%s", rep.Err(), rep.Table())
	}
	if rep.Passed != 14 || rep.Failed != 0 {
		t.Fatalf("expected 14 passed, got passed=%d failed=%d", rep.Passed, rep.Failed)
	}
	if len(rep.Results) != set.Count() {
		t.Fatalf("results %d != cases %d", len(rep.Results), set.Count())
	}
	if !strings.Contains(rep.Table(), "philox4x32") {
		t.Fatalf("table missing suite:\n%s", rep.Table())
	}
}

func TestDefaultFixturesMatchTestdata(t *testing.T) {
	fx, err := golden.DefaultFixtures()
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if fx.Length != golden.DefaultLength {
		t.Fatalf("length = %d", fx.Length)
	}
	built, err := fx.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := loadTestdata(t)
	for _, s := range golden.Suites() {
		if len(built[s]) != len(want[s]) {
			t.Fatalf("%s: built %d cases, testdata %d", s, len(built[s]), len(want[s]))
		}
		for i := range want[s] {
			if got, exp := built[s][i].String(), want[s][i].String(); got != exp {
				t.Fatalf("%s case %d:\n got %s\nwant %s", s, i, got, exp)
			}
		}
	}
}

func TestLineRoundTrip(t *testing.T) {
	for _, s := range golden.Suites() {
		f, err := os.Open(filepath.Join(testdata, s.FileName()))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 4096), 1<<20)
		for sc.Scan() {
			line := sc.Text()
			c, err := golden.ParseLine(s, line)
			if err != nil {
				t.Fatalf("%s: parse %q: %v", s, line, err)
			}
			if len(c.Gen) != golden.DefaultLength {
				t.Fatalf("%s: gen length %d", s, len(c.Gen))
			}
			if c.String() != line {
				t.Fatalf("%s: round trip\n got %s\nwant %s", s, c.String(), line)
			}
		}
		f.Close()
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	set := loadTestdata(t)

	c := set[golden.Philox4x32][0]
	c.Gen = append([]uint64(nil), c.Gen...)
	c.Gen[5]++
	err := golden.Verify(c)
	var m *errs.Mismatch
	if !errors.As(err, &m) {
		t.Fatalf("expected *errs.Mismatch, got %v", err)
	}
	if m.Index != 5 || m.Lane != 1 || m.Suite != "philox4x32" {
		t.Fatalf("unexpected mismatch: %+v", m)
	}
	if m.Expected != m.Actual+1 {
		t.Fatalf("expected/actual off: %+v", m)
	}
	if m.Inputs != c.Inputs() {
		t.Fatalf("inputs not carried: %q", m.Inputs)
	}

	l := set[golden.MinStdRand][1]
	l.Gen = append([]uint64(nil), l.Gen...)
	l.Gen[0] = 0
	err = golden.Verify(l)
	if !errors.As(err, &m) {
		t.Fatalf("expected *errs.Mismatch, got %v", err)
	}
	if m.Lane != -1 || m.Index != 0 || strings.Contains(m.Error(), "lane=") {
		t.Fatalf("lcg mismatch should not carry lane: %v", m)
	}
	if errs.Level(err) != errs.Warn {
		t.Fatalf("mismatch level = %v", errs.Level(err))
	}

	// 一個錯值只影響自己的 case
	set[golden.Philox4x32][0] = c
	rep, err := golden.VerifyAll(context.Background(), set, 2, false)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if rep.Failed != 1 || rep.Passed != 13 || len(rep.Mismatches()) != 1 {
		t.Fatalf("expected exactly one failure, got passed=%d failed=%d", rep.Passed, rep.Failed)
	}
	if !strings.Contains(rep.Table(), "FAIL") {
		t.Fatalf("table should flag failure:\n%s", rep.Table())
	}
}

func TestVerifyAllCanceled(t *testing.T) {
	set := loadTestdata(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := golden.VerifyAll(ctx, set, 1, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rep == nil || rep.Passed+rep.Failed > set.Count() {
		t.Fatalf("unexpected report %+v", rep)
	}

	if _, err := golden.VerifyAll(context.Background(), set, 0, false); err == nil {
		t.Fatalf("expected error for zero workers")
	}
}

func TestSaveLoadDir(t *testing.T) {
	set := loadTestdata(t)
	for _, compress := range []bool{false, true} {
		dir := t.TempDir()
		paths, err := golden.SaveDir(dir, set, compress)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if len(paths) != len(set.Suites()) {
			t.Fatalf("wrote %d files", len(paths))
		}
		if compress && !strings.HasSuffix(paths[0], ".dat.zst") {
			t.Fatalf("expected .dat.zst, got %s", paths[0])
		}
		back, err := golden.LoadDir(dir)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		for _, s := range set.Suites() {
			for i := range set[s] {
				if back[s][i].String() != set[s][i].String() {
					t.Fatalf("compress=%v %s case %d differs", compress, s, i)
				}
			}
		}
	}

	if plain, err := os.ReadFile(filepath.Join(testdata, "rand48.dat")); err == nil {
		dir := t.TempDir()
		if _, err := golden.SaveFile(dir, golden.Rand48, set[golden.Rand48], false); err != nil {
			t.Fatalf("save file: %v", err)
		}
		got, _ := os.ReadFile(filepath.Join(dir, "rand48.dat"))
		if string(got) != string(plain) {
			t.Fatalf("written file differs from testdata")
		}
	}

	if _, err := golden.LoadDir(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestParseLineErrors(t *testing.T) {
	bad := []struct {
		suite golden.Suite
		line  string
	}{
		{golden.MinStdRand, ""},
		{golden.MinStdRand, "seed=1"},
		{golden.MinStdRand, "seed=x;gen=1,"},
		{golden.MinStdRand, "seed;gen=1,"},
		{golden.MinStdRand, "seed=1;foo=2;gen=1,"},
		{golden.MinStdRand, "key=1;ctr=1,2;gen=1,"},
		{golden.Philox2x32, "seed=1;gen=1,"},
		{golden.Philox2x32, "key=1,2;ctr=1,2;gen=1,"},
		{golden.Philox2x32, "key=1;ctr=1;gen=1,"},
		{golden.Philox2x32, "key=4294967296;ctr=1,2;gen=1,"},
		{golden.Philox4x32, "key=1,2;ctr=1,2,3,4;gen=99999999999,"},
	}
	for _, tc := range bad {
		if _, err := golden.ParseLine(tc.suite, tc.line); err == nil {
			t.Fatalf("%s: expected error for %q", tc.suite, tc.line)
		} else if errs.Level(err) != errs.Warn {
			t.Fatalf("%s %q: level = %v", tc.suite, tc.line, errs.Level(err))
		}
	}

	if _, err := golden.ReadSuite(strings.NewReader("seed=1;gen=1,\n\nseed=oops;gen=1,\n"), golden.MinStdRand); err == nil {
		t.Fatalf("expected error")
	} else if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error should carry line number: %v", err)
	}
}

func TestGenMustBeComplete(t *testing.T) {
	for _, tc := range []struct {
		suite golden.Suite
		line  string
	}{
		{golden.MinStdRand, "seed=1;gen="},
		{golden.MinStdRand, "seed=1;gen=,"},
		{golden.Philox4x32, "key=1,2;ctr=1,2,3,4;gen=1,"},
		{golden.Philox2x64, "key=1;ctr=1,2;gen=1,2,3,"},
	} {
		if _, err := golden.ParseLine(tc.suite, tc.line); errs.Level(err) != errs.Warn {
			t.Fatalf("%s %q: expected warn, got %v", tc.suite, tc.line, err)
		}
	}

	// 讀檔時空 gen 要帶行號報錯，不能默默通過
	_, err := golden.ReadSuite(strings.NewReader("seed=1;gen=48271,\nseed=1;gen=\n"), golden.MinStdRand)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}

	// 直接組出來的 case 也一樣
	if err := golden.Verify(golden.Case{Suite: golden.MinStdRand, Seed: 1}); errs.Level(err) != errs.Warn {
		t.Fatalf("empty gen verified: %v", err)
	}
	rep, err := golden.VerifyAll(context.Background(), golden.Set{
		golden.Philox4x32: {{Suite: golden.Philox4x32, Key: []uint64{1, 2}, Ctr: []uint64{1, 2, 3, 4}}},
	}, 1, false)
	if err != nil || rep.OK() || rep.Failed != 1 {
		t.Fatalf("empty philox gen should fail: %+v %v", rep, err)
	}
}

func TestCheckLength(t *testing.T) {
	set := loadTestdata(t)
	if err := set.CheckLength(golden.DefaultLength); err != nil {
		t.Fatalf("testdata: %v", err)
	}

	short := golden.Set{golden.MinStdRand: append([]golden.Case(nil), set[golden.MinStdRand]...)}
	c := short[golden.MinStdRand][1]
	c.Gen = c.Gen[:4]
	short[golden.MinStdRand][1] = c
	if err := golden.Verify(c); err != nil {
		t.Fatalf("prefix should still match: %v", err)
	}
	err := short.CheckLength(golden.DefaultLength)
	if errs.Level(err) != errs.Warn || !strings.Contains(err.Error(), "case 1") {
		t.Fatalf("short case not reported: %v", err)
	}

	fx := &golden.Fixtures{Length: 3, Suites: []golden.FixtureSuite{{
		Suite: string(golden.Philox2x32),
		Cases: []golden.FixtureCase{{Key: []golden.Number{1}, Ctr: []golden.Number{0, 0}}},
	}}}
	if _, err := fx.Build(); err == nil {
		t.Fatalf("philox2x32 with length 3 should not build")
	}
}

func TestParseSuite(t *testing.T) {
	ok := map[string]golden.Suite{
		"rand48":                   golden.Rand48,
		"philox4x64.dat":           golden.Philox4x64,
		"out/minstd_rand.dat.zst":  golden.MinStdRand,
		`C:\golden\philox2x32.dat`: golden.Philox2x32,
	}
	for in, want := range ok {
		got, err := golden.ParseSuite(in)
		if err != nil || got != want {
			t.Fatalf("ParseSuite(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := golden.ParseSuite("mt19937"); err == nil {
		t.Fatalf("expected error for unknown suite")
	}
}

func TestProduceArgs(t *testing.T) {
	c := golden.Case{Suite: golden.MinStdRand, Seed: 1}
	if _, err := golden.Produce(c, -1); err == nil {
		t.Fatalf("expected error for negative length")
	}
	got, err := golden.Produce(c, 2)
	if err != nil {
		t.Fatalf("produce: %v", err)
	}
	if got[0] != 48271 || got[1] != 182605794 {
		t.Fatalf("minstd from seed 1 = %v", got)
	}
	if _, err := golden.Produce(golden.Case{Suite: "nope"}, 1); err == nil {
		t.Fatalf("expected error for unknown suite")
	}
}

func TestFixturesParse(t *testing.T) {
	fx, err := golden.ParseFixtures([]byte(`
suites:
  - suite: philox2x64
    cases:
      - key: [0x1]
        ctr: [2, 3]
        jump: 18446744073709551615
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if fx.Length != golden.DefaultLength {
		t.Fatalf("default length not applied: %d", fx.Length)
	}
	set, err := fx.Cases()
	if err != nil {
		t.Fatalf("cases: %v", err)
	}
	c := set[golden.Philox2x64][0]
	if !c.HasJump || c.Jump != 1<<64-1 || c.Key[0] != 1 {
		t.Fatalf("unexpected case %+v", c)
	}

	for _, doc := range []string{
		"suites:\n  - suite: minstd_rand\n    cases:\n      - jump: 1\n",
		"suites:\n  - suite: philox4x32\n    cases:\n      - key: [1]\n        ctr: [1,2,3,4]\n",
		"suites:\n  - suite: rand48\n    cases:\n      - seed: nope\n",
		"length: -3\n",
	} {
		fx, err := golden.ParseFixtures([]byte(doc))
		if err == nil {
			_, err = fx.Cases()
		}
		if err == nil {
			t.Fatalf("expected error for:\n%s", doc)
		}
	}
}
