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

// Counter 為 N 個字的 counter，lane 0 為最低位（little-endian）。
// 陣列固定 4 格；N=2 時 lane 2、3 不使用且維持 0。
type Counter[T Word] [4]T

// Key 為 N/2 個字的 key；N=2 時 lane 1 不使用。
type Key[T Word] [2]T

// Incr 將 counter 視為 N*W bits 的無號整數並加 1，逐字進位，
// 某字未溢位即停止；最高字溢位時整體 wrap。
func (p Params[T]) Incr(c *Counter[T]) {
	for i := 0; i < p.N; i++ {
		c[i]++
		if c[i] != 0 {
			return
		}
	}
}

// Add 將 counter 加上 delta（jump）。
// delta 依字寬切成 limb：W=32 時佔 lane 0、1，W=64 時只佔 lane 0。
// 與 delta 大小無關，成本為 O(N)。
func (p Params[T]) Add(c *Counter[T], delta uint64) {
	var d Counter[T]
	d[0] = T(delta)
	if wordBits[T]() == 32 {
		d[1] = T(delta >> 32)
	}
	p.AddCounter(c, d)
}

// AddCounter 做完整的 N 字加法（delta 可寬於 64 bits）。
func (p Params[T]) AddCounter(c *Counter[T], d Counter[T]) {
	var carry T
	for i := 0; i < p.N; i++ {
		s := c[i] + d[i]
		c1 := s < c[i]
		s2 := s + carry
		c2 := s2 < s
		c[i] = s2
		if c1 || c2 {
			carry = 1
		} else {
			carry = 0
		}
	}
}

// Less 比較兩個 counter 的大小（以 N*W bits 無號整數看待）。
func (p Params[T]) Less(a, b Counter[T]) bool {
	for i := p.N - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
