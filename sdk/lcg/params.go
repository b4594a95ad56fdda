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

package lcg

import (
	"github.com/zintix-labs/goldenrng/errs"
)

// Params 為一個 LCG variant 的常數組：x' = (A*x + C) mod M。
//
// 所有 variant 共用同一份引擎邏輯，差異只在這份資料。
type Params struct {
	Name string
	A    uint64 // multiplier
	C    uint64 // increment
	M    uint64 // modulus，需 >= 2
}

var (
	// MinStdRand : Park–Miller 修正版，std::minstd_rand
	MinStdRand = Params{Name: "minstd_rand", A: 48271, C: 0, M: 1<<31 - 1}
	// MinStdRand0 : Park–Miller 原版，std::minstd_rand0
	MinStdRand0 = Params{Name: "minstd_rand0", A: 16807, C: 0, M: 1<<31 - 1}
	// Rand48 : POSIX drand48 系列的遞推式（2^48 模數）
	Rand48 = Params{Name: "rand48", A: 0x5DEECE66D, C: 11, M: 1 << 48}
)

// DefaultSeed 同 std::linear_congruential_engine::default_seed。
const DefaultSeed uint64 = 1

// Variants 回傳內建 variant，依名稱查詢用。
func Variants() []Params {
	return []Params{MinStdRand, MinStdRand0, Rand48}
}

// Lookup 依名稱找內建 variant。
func Lookup(name string) (Params, bool) {
	for _, p := range Variants() {
		if p.Name == name {
			return p, true
		}
	}
	return Params{}, false
}

// Validate 檢查外部傳入的參數。引擎本身不做檢查（M == 0 會 panic）。
func (p Params) Validate() error {
	if p.M < 2 {
		return errs.Warnf("lcg %q: modulus must be >= 2, got %d", p.Name, p.M)
	}
	if p.A == 0 || p.A >= p.M {
		return errs.Warnf("lcg %q: multiplier must be in [1, m), got %d", p.Name, p.A)
	}
	if p.C >= p.M {
		return errs.Warnf("lcg %q: increment must be in [0, m), got %d", p.Name, p.C)
	}
	return nil
}
