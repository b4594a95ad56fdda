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

// Package perf 在 CLI 執行期間收集 pprof。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/goldenrng/errs"
)

// DefaultDir 為 pprof 檔案寫入路徑。
const DefaultDir = "build/profiling"

// Mode 為 profile 種類；空字串代表不收集。
type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// ParseMode 解析 -p flag。
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModeCPU, ModeHeap, ModeAllocs:
		return m, nil
	default:
		return ModeNone, errs.Warnf("unknown pprof mode %q (want '', cpu, heap, allocs)", s)
	}
}

// RunPProf 執行 exe 並依 mode 寫出 <dir>/<mode>.pprof，回傳寫出的路徑（ModeNone 為空字串）。
//
//	go run ./cmd/golden -p cpu
//	go tool pprof build/profiling/cpu.pprof
func RunPProf(exe func(), mode Mode, dir string) (string, error) {
	if mode == ModeNone {
		exe()
		return "", nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrapf(err, "mkdir %s", dir)
	}
	path := filepath.Join(dir, string(mode)+".pprof")

	switch mode {
	case ModeCPU:
		return path, profileCPU(exe, path)
	case ModeHeap, ModeAllocs:
		exe()
		return path, writeProfile(string(mode), path)
	default:
		exe()
		return "", errs.Warnf("unknown pprof mode %q", mode)
	}
}

// profileCPU 的結果也可作為 PGO 的 default.pgo。
func profileCPU(exe func(), path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	exe()
	pprof.StopCPUProfile()
	return f.Close()
}

// writeProfile 在 exe 之後寫出 heap（in-use）或 allocs（累積配置）快照。
func writeProfile(name, path string) error {
	if name == string(ModeHeap) {
		// 讓快照貼近 live objects
		runtime.GC()
	}
	prof := pprof.Lookup(name)
	if prof == nil {
		return errs.Fatalf("profile %s not available", name)
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrapf(err, "write %s profile", name)
	}
	return f.Close()
}
