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

// Package philox implements the Philox family of counter-based generators
// (Salmon et al., "Parallel Random Numbers: As Easy as 1, 2, 3").
//
// 輸出與 Random123 的 philox{2,4}x{32,64} 逐值一致。
package philox

// Generate 為純函數：由 (counter, key) 經 p.Rounds 輪混合得到 N 個輸出字。
//
// 第 0 輪使用原始 key；之後每輪前 key 各 lane 加上 Weyl 常數（mod 2^W）。
// ctr 與 key 以值傳入，呼叫端的變數不會被改動。
func Generate[T Word](p Params[T], ctr Counter[T], key Key[T]) Counter[T] {
	for r := 0; r < p.Rounds; r++ {
		if r > 0 {
			key = bumpKey(p, key)
		}
		ctr = round(p, ctr, key)
	}
	return ctr
}

func bumpKey[T Word](p Params[T], key Key[T]) Key[T] {
	key[0] += p.Weyl[0]
	if p.N == 4 {
		key[1] += p.Weyl[1]
	}
	return key
}

// round 為單輪 S-box：
//
//	2xW: (hi,lo) = M0*c0            -> {hi^k0^c1, lo}
//	4xW: (hi0,lo0) = M0*c0, (hi1,lo1) = M1*c2
//	                                -> {hi1^c1^k0, lo1, hi0^c3^k1, lo0}
//
// 4xW 的輸出排列即 Philox 的固定置換表。
func round[T Word](p Params[T], c Counter[T], k Key[T]) Counter[T] {
	if p.N == 2 {
		hi, lo := mulhilo(p.M[0], c[0])
		return Counter[T]{hi ^ k[0] ^ c[1], lo}
	}
	hi0, lo0 := mulhilo(p.M[0], c[0])
	hi1, lo1 := mulhilo(p.M[1], c[2])
	return Counter[T]{hi1 ^ c[1] ^ k[0], lo1, hi0 ^ c[3] ^ k[1], lo0}
}
