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

// Affine 表示 x -> (A*x + C) mod M。
//
// LCG 的 n 步合成仍是仿射映射，jump-ahead 就是求出這組 (A, C)。
type Affine struct {
	A uint64
	C uint64
	M uint64
}

// Identity 為 0 步。
func Identity(m uint64) Affine {
	return Affine{A: 1 % m, C: 0, M: m}
}

// Apply 作用在狀態 x 上。
func (f Affine) Apply(x uint64) uint64 {
	return MulAddMod(f.A, x, f.C, f.M)
}

// Then 回傳「先 f 再 g」的合成映射。兩者模數必須相同。
func (f Affine) Then(g Affine) Affine {
	return Affine{
		A: MulMod(g.A, f.A, f.M),
		C: MulAddMod(g.A, f.C, g.C, f.M),
		M: f.M,
	}
}

// Jump 回傳 n 步的合成映射：A = a^n mod m，
//
//	C = c*n mod m                        當 a ≡ 1
//	C = c*(A-1)*inv(a-1) mod m           當 gcd(a-1, m) == 1
//	C = 平方乘法求等比級數               其他（例如 rand48：a-1 為偶數、m 為 2 的冪）
//
// 三條路徑皆為 O(log n)，且直接吃 n 的二進位表示，不會先對週期取模。
func Jump(p Params, n uint64) Affine {
	m := p.M
	a := p.A % m
	c := p.C % m
	A := ModPow(a, n, m)

	if a == 1%m {
		return Affine{A: A, C: MulMod(c, n%m, m), M: m}
	}
	if c == 0 {
		return Affine{A: A, C: 0, M: m}
	}
	if d := SubMod(a, 1, m); GCD(d, m) == 1 {
		inv, _ := ModInv(d, m)
		C := MulMod(MulMod(c, SubMod(A, 1, m), m), inv, m)
		return Affine{A: A, C: C, M: m}
	}
	return jumpBySquaring(a, c, n, m)
}

// jumpBySquaring 不需要反元素：累積 acc，並把 cur 每輪自我合成一次（cur∘cur）。
func jumpBySquaring(a, c, n, m uint64) Affine {
	acc := Identity(m)
	cur := Affine{A: a, C: c, M: m}
	for n > 0 {
		if n&1 == 1 {
			acc = acc.Then(cur)
		}
		cur = cur.Then(cur)
		n >>= 1
	}
	return acc
}
