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

package philox

import (
	"math/bits"

	"github.com/zintix-labs/goldenrng/errs"
)

// Word 為 Philox 的字寬：32 或 64 bits。所有運算依 Go 無號型別自然 wrap。
type Word interface {
	uint32 | uint64
}

// DefaultRounds 為 Random123 的預設輪數。
const DefaultRounds = 10

// Params 為一個 Philox variant 的常數組。
//
// 這些常數定義了演算法本身，不是可調設定；同一份引擎邏輯吃不同的 Params。
// M 與 Weyl 只使用前 N/2 個 lane。
type Params[T Word] struct {
	Name   string
	N      int // counter 字數：2 或 4
	Rounds int
	M      [2]T // 每對 lane 的乘法常數
	Weyl   [2]T // 每個 key lane 的 Weyl 增量
}

const (
	m2x32   uint32 = 0xD256D193
	m4x32_0 uint32 = 0xD2511F53
	m4x32_1 uint32 = 0xCD9E8D57
	w32_0   uint32 = 0x9E3779B9 // golden ratio
	w32_1   uint32 = 0xBB67AE85 // sqrt(3)-1

	m2x64   uint64 = 0xD2B74407B1CE6E93
	m4x64_0 uint64 = 0xD2E7470EE14C6C93
	m4x64_1 uint64 = 0xCA5A826395121157
	w64_0   uint64 = 0x9E3779B97F4A7C15
	w64_1   uint64 = 0xBB67AE8584CAA73B
)

var (
	Philox2x32 = Params[uint32]{Name: "philox2x32", N: 2, Rounds: DefaultRounds, M: [2]uint32{m2x32}, Weyl: [2]uint32{w32_0}}
	Philox4x32 = Params[uint32]{Name: "philox4x32", N: 4, Rounds: DefaultRounds, M: [2]uint32{m4x32_0, m4x32_1}, Weyl: [2]uint32{w32_0, w32_1}}
	Philox2x64 = Params[uint64]{Name: "philox2x64", N: 2, Rounds: DefaultRounds, M: [2]uint64{m2x64}, Weyl: [2]uint64{w64_0}}
	Philox4x64 = Params[uint64]{Name: "philox4x64", N: 4, Rounds: DefaultRounds, M: [2]uint64{m4x64_0, m4x64_1}, Weyl: [2]uint64{w64_0, w64_1}}
)

// WithRounds 回傳改變輪數後的副本（例如 Philox4x32-7）。
func (p Params[T]) WithRounds(r int) Params[T] {
	p.Rounds = r
	return p
}

// KeyLen 回傳 key 字數 N/2。
func (p Params[T]) KeyLen() int { return p.N / 2 }

// WordBits 回傳字寬（32 或 64）。
func (p Params[T]) WordBits() int { return wordBits[T]() }

// Validate 檢查外部組裝的參數。
func (p Params[T]) Validate() error {
	if p.N != 2 && p.N != 4 {
		return errs.Warnf("philox %q: N must be 2 or 4, got %d", p.Name, p.N)
	}
	if p.Rounds < 0 {
		return errs.Warnf("philox %q: rounds must be >= 0, got %d", p.Name, p.Rounds)
	}
	return nil
}

func wordBits[T Word]() int {
	return bits.Len64(uint64(^T(0)))
}

// mulhilo 做完整的雙倍寬乘法，回傳高低兩半。
func mulhilo[T Word](a, b T) (hi, lo T) {
	if wordBits[T]() == 32 {
		p := uint64(a) * uint64(b)
		return T(p >> 32), T(p)
	}
	h, l := bits.Mul64(uint64(a), uint64(b))
	return T(h), T(l)
}
