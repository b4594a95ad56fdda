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

// Package golden 讀寫並驗證 golden vector 檔（每個 suite 一個 .dat）。
//
// 每一行是一個 case：輸入參數加上 16 個十進位輸出，例如
//
//	seed=3735928559;gen=2068214664,422780561,...,
//	key=3735928559;ctr=3199060734,305419896;jump=559389662;gen=...,
package golden

import (
	"strings"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/sdk/lcg"
)

// Suite 為 variant 名稱，同時決定檔名 <suite>.dat。
type Suite string

const (
	MinStdRand Suite = "minstd_rand"
	Rand48     Suite = "rand48"
	Philox2x32 Suite = "philox2x32"
	Philox2x64 Suite = "philox2x64"
	Philox4x32 Suite = "philox4x32"
	Philox4x64 Suite = "philox4x64"
)

// DefaultLength 為每個 case 的輸出數。
const DefaultLength = 16

// Suites 依固定順序列出所有 suite。
func Suites() []Suite {
	return []Suite{MinStdRand, Rand48, Philox2x32, Philox2x64, Philox4x32, Philox4x64}
}

// ParseSuite 由名稱或檔名（可帶 .dat / .dat.zst）解析 suite。
func ParseSuite(name string) (Suite, error) {
	base := name
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, ".dat")
	for _, s := range Suites() {
		if string(s) == base {
			return s, nil
		}
	}
	return "", errs.Warnf("unknown suite %q", name)
}

// IsLCG 是否為 LCG 家族。
func (s Suite) IsLCG() bool {
	return s == MinStdRand || s == Rand48
}

// Lanes 每個 counter 產出的字數；LCG 為 1。
func (s Suite) Lanes() int {
	switch s {
	case Philox2x32, Philox2x64:
		return 2
	case Philox4x32, Philox4x64:
		return 4
	default:
		return 1
	}
}

// WordBits 輸出字寬。
func (s Suite) WordBits() int {
	switch s {
	case Philox2x32, Philox4x32:
		return 32
	default:
		return 64
	}
}

// FileName 回傳 suite 的檔名。
func (s Suite) FileName() string {
	return string(s) + ".dat"
}

func (s Suite) lcgParams() lcg.Params {
	p, _ := lcg.Lookup(string(s))
	return p
}

// Set 為多個 suite 的 case 集合。
type Set map[Suite][]Case

// Suites 依固定順序回傳 Set 內有資料的 suite。
func (set Set) Suites() []Suite {
	out := make([]Suite, 0, len(set))
	for _, s := range Suites() {
		if len(set[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// CheckLength 確認每個 case 都恰有 n 個輸出值。
func (set Set) CheckLength(n int) error {
	for _, s := range set.Suites() {
		for i, c := range set[s] {
			if len(c.Gen) != n {
				return errs.Warnf("%s case %d: gen has %d values, want %d", s, i, len(c.Gen), n)
			}
		}
	}
	return nil
}

// Count 回傳 case 總數。
func (set Set) Count() int {
	n := 0
	for _, cs := range set {
		n += len(cs)
	}
	return n
}
