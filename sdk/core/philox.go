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

// Portions of the bounded random generation logic (UintN/IntN) are
// adapted from the Go standard library (math/rand), which is
// licensed under the BSD 3-Clause License.

package core

import (
	"math/bits"

	"github.com/zintix-labs/goldenrng/sdk/philox"
)

// Philox 以 Philox4x64 stream 實作 PRNG。
//
// key 由 seed 經 splitmix64 展開；counter 的最高字放 stream id，
// 因此同一 seed 的不同 stream id 互不重疊（每條有 2^192 個 block）。
type Philox struct {
	s philox.Stream[uint64]
}

// NewPhilox 以 seed 與 stream id 建立 PRNG。
func NewPhilox(seed int64, streamID uint64) *Philox {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	key := philox.Key[uint64]{splitmix64(x), splitmix64(x ^ 0xDA942042E4DD58B5)}
	ctr := philox.Counter[uint64]{0, 0, 0, streamID}
	return &Philox{s: philox.NewStream(philox.Philox4x64, key, ctr)}
}

// Split 回傳同 seed 下第 i 條獨立子序列，供併發 worker 使用。
func Split(seed int64, i uint64) *Philox {
	return NewPhilox(seed, i)
}

//---------------------------------------
// 回傳方法
//---------------------------------------

// Uint64 回傳 uint64 亂數
func (r *Philox) Uint64() uint64 {
	return r.s.Next()
}

// UintN 產出[0,n) 的uint整數，若 max == 0 回傳 0
func (r *Philox) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.uint64n(uint64(max)))
}

// IntN 產出[0,n) 的整數，若 max <= 0 回傳 -1
func (r *Philox) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return int(r.uint64n(uint64(max)))
}

// Float64 產出float64(53bits精度)
func (r *Philox) Float64() float64 {
	return r.s.Float64()
}

// Skip 跳過 n 個輸出，O(1)。
func (r *Philox) Skip(n uint64) {
	r.s.Skip(n)
}

// Restore 恢復內部狀態
func (r *Philox) Restore(data []byte) error {
	return r.s.UnmarshalBinary(data)
}

// Snapshot 取得當下內部狀態
func (r *Philox) Snapshot() ([]byte, error) {
	return r.s.MarshalBinary()
}

//---------------------------------------
// 內部方法
//---------------------------------------

// splitmix64 將輸入值混洗成新的 64-bit 值，用於種子展開。
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// uint64n 回傳 [0,n) 的無偏亂數（乘法高位 + 拒絕採樣）。
func (r *Philox) uint64n(n uint64) uint64 {
	if n&(n-1) == 0 { // n is power of two, can mask
		return r.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}
	return hi
}
