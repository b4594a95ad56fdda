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

// Package lcg implements linear congruential generators with O(log n) jump-ahead.
//
// 輸出與 C++ std::linear_congruential_engine 逐值一致：
// Next 回傳「更新後」的狀態；Discard(n) 等同呼叫 n 次 Next。
package lcg

import (
	"encoding/binary"

	"github.com/zintix-labs/goldenrng/errs"
)

// Engine 為 LCG 狀態，值型別：複製即分叉出一條獨立、同位置的序列。
//
// 不變式：0 <= x < p.M。零值不可用（M 為 0），一律經由 New 建立。
type Engine struct {
	p Params
	x uint64
}

// New 以 variant 與 seed 建立引擎。p 應已通過 Validate。
func New(p Params, seed uint64) Engine {
	e := Engine{p: p}
	e.Seed(seed)
	return e
}

// Seed 設定 x = s mod m。
// 若 c ≡ 0 且 s ≡ 0，x 設為 1（0 是乘法型 LCG 的不動點，std::linear_congruential_engine 同此規則）。
func (e *Engine) Seed(s uint64) {
	x := s % e.p.M
	if e.p.C%e.p.M == 0 && x == 0 {
		x = 1
	}
	e.x = x
}

// Next 推進一步並回傳新狀態。
func (e *Engine) Next() uint64 {
	e.x = MulAddMod(e.p.A, e.x, e.p.C, e.p.M)
	return e.x
}

// Discard 等同呼叫 n 次 Next，但只需 O(log n)。
func (e *Engine) Discard(n uint64) {
	if n == 0 {
		return
	}
	e.x = Jump(e.p, n).Apply(e.x)
}

// Fill 以連續輸出填滿 dst。
func (e *Engine) Fill(dst []uint64) {
	for i := range dst {
		dst[i] = e.Next()
	}
}

// Float64 回傳 [0,1) 的浮點數：Next()/M。
func (e *Engine) Float64() float64 {
	return float64(e.Next()) / float64(e.p.M)
}

// State 回傳目前狀態（下一次 Next 之前的 x）。
func (e Engine) State() uint64 { return e.x }

// Params 回傳 variant 參數。
func (e Engine) Params() Params { return e.p }

// MarshalBinary 快照：A、C、M、x 各 8 bytes（big-endian）。
func (e Engine) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 32)
	b = binary.BigEndian.AppendUint64(b, e.p.A)
	b = binary.BigEndian.AppendUint64(b, e.p.C)
	b = binary.BigEndian.AppendUint64(b, e.p.M)
	b = binary.BigEndian.AppendUint64(b, e.x)
	return b, nil
}

// UnmarshalBinary 還原快照；參數需與目前 variant 一致。
func (e *Engine) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return errs.Warnf("lcg restore: want 32 bytes, got %d", len(data))
	}
	a := binary.BigEndian.Uint64(data[0:])
	c := binary.BigEndian.Uint64(data[8:])
	m := binary.BigEndian.Uint64(data[16:])
	x := binary.BigEndian.Uint64(data[24:])
	if a != e.p.A || c != e.p.C || m != e.p.M {
		return errs.NewWithExtra(errs.Warn, "lcg restore: params mismatch", e.p.Name)
	}
	if x >= m {
		return errs.Warnf("lcg restore: state %d out of range [0, %d)", x, m)
	}
	e.x = x
	return nil
}

// Strided 輸出基礎序列的第 offset, offset+stride, offset+2*stride ... 個值（0 起算）。
//
// 多個 worker 各取 offset = i、stride = T，即可不互相溝通地切分同一條序列。
type Strided struct {
	e    Engine
	skip Affine
}

// NewStrided 建立跨步子序列；stride 為 0 時視為 1。
func NewStrided(p Params, seed, offset, stride uint64) Strided {
	if stride == 0 {
		stride = 1
	}
	e := New(p, seed)
	e.Discard(offset)
	return Strided{e: e, skip: Jump(p, stride-1)}
}

// Next 回傳目前位置的值並跳到下一個位置。
func (s *Strided) Next() uint64 {
	v := s.e.Next()
	s.e.x = s.skip.Apply(s.e.x)
	return v
}
