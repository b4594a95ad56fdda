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

import "math/bits"

// 以下皆為不帶引擎狀態的純函數，所有 variant 共用。
// 乘法一律走 128-bit 中間值（bits.Mul64 + bits.Rem64），m 只要求 > 0。

// MulMod 回傳 (a*b) mod m。
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// MulAddMod 回傳 (a*x + c) mod m。
func MulAddMod(a, x, c, m uint64) uint64 {
	hi, lo := bits.Mul64(a, x)
	lo, carry := bits.Add64(lo, c, 0)
	// a*x <= 2^128 - 2^65 + 1，再加上 c < 2^64 仍放得進 128 bits
	hi += carry
	return bits.Rem64(hi, lo, m)
}

// AddMod 回傳 (a+b) mod m。
func AddMod(a, b, m uint64) uint64 {
	a %= m
	b %= m
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= m {
		s -= m
	}
	return s
}

// SubMod 回傳 (a-b) mod m。
func SubMod(a, b, m uint64) uint64 {
	a %= m
	b %= m
	if a >= b {
		return a - b
	}
	return m - (b - a)
}

// ModPow 以平方乘法計算 b^e mod m，O(log e) 次乘法。
func ModPow(b, e, m uint64) uint64 {
	r := 1 % m
	b %= m
	for e > 0 {
		if e&1 == 1 {
			r = MulMod(r, b, m)
		}
		b = MulMod(b, b, m)
		e >>= 1
	}
	return r
}

// GCD 最大公因數。
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModInv 以擴展歐幾里得演算法求 a 在模 m 下的反元素。
// gcd(a, m) != 1 時回傳 (0, false)。
//
// 係數全程保持在 [0, m)，避免有號溢位：不變式為 t_i * a ≡ r_i (mod m)。
func ModInv(a, m uint64) (uint64, bool) {
	r0, r1 := m, a%m
	t0, t1 := uint64(0), 1%m
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0-q*r1
		t0, t1 = t1, SubMod(t0, MulMod(q%m, t1, m), m)
	}
	if r0 != 1 {
		return 0, false
	}
	return t0, true
}
