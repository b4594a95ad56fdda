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
	"encoding/binary"

	"github.com/zintix-labs/goldenrng/errs"
)

// Stream 把 Generate 串成連續序列：每個 counter 值產出 N 個字（lane 0..N-1），
// 用完後 counter 加 1。
//
// Stream 是值型別，複製即得到同位置、互不影響的另一條序列。
// 零值不可用（N 為 0），一律經由 NewStream 建立，p 應已通過 Validate。
type Stream[T Word] struct {
	p     Params[T]
	key   Key[T]
	ctr   Counter[T] // 目前 block 的 counter
	lane  int        // 下一個要輸出的 lane
	block Counter[T]
	valid bool // block 是否為 Generate(ctr, key) 的快取
}

// NewStream 以 key 與起始 counter 建立序列。
func NewStream[T Word](p Params[T], key Key[T], ctr Counter[T]) Stream[T] {
	return Stream[T]{p: p, key: key, ctr: ctr}
}

// SetKey 直接指定 key，位置不變。
func (s *Stream[T]) SetKey(k Key[T]) {
	s.key = k
	s.valid = false
}

// SetCounter 直接指定 counter，並回到 lane 0。
func (s *Stream[T]) SetCounter(c Counter[T]) {
	s.ctr = c
	s.lane = 0
	s.valid = false
}

func (s *Stream[T]) Key() Key[T]         { return s.key }
func (s *Stream[T]) Counter() Counter[T] { return s.ctr }
func (s *Stream[T]) Lane() int           { return s.lane }
func (s *Stream[T]) Params() Params[T]   { return s.p }

// Next 回傳下一個輸出字。
func (s *Stream[T]) Next() T {
	if !s.valid {
		s.block = Generate(s.p, s.ctr, s.key)
		s.valid = true
	}
	v := s.block[s.lane]
	s.lane++
	if s.lane == s.p.N {
		s.p.Incr(&s.ctr)
		s.lane = 0
		s.valid = false
	}
	return v
}

// Block 回傳目前 counter 的整個 block 並前進一個 counter。
// 若目前 block 已被 Next 消耗一部分，剩餘 lane 會被捨棄。
func (s *Stream[T]) Block() Counter[T] {
	out := Generate(s.p, s.ctr, s.key)
	s.p.Incr(&s.ctr)
	s.lane = 0
	s.valid = false
	return out
}

// Jump 將 counter 前進 delta（等同跳過 delta 個 block），lane 不變。
func (s *Stream[T]) Jump(delta uint64) {
	if delta == 0 {
		return
	}
	s.p.Add(&s.ctr, delta)
	s.valid = false
}

// Skip 跳過 n 個輸出字：n/N 個 counter 再加上 n%N 個 lane。
func (s *Stream[T]) Skip(n uint64) {
	blocks := n / uint64(s.p.N)
	s.lane += int(n % uint64(s.p.N))
	if s.lane >= s.p.N {
		s.lane -= s.p.N
		blocks++
	}
	s.Jump(blocks)
}

// Fill 以連續輸出填滿 dst。
func (s *Stream[T]) Fill(dst []T) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

// Uint64 回傳 64-bit 亂數；32-bit 字寬時以兩個 lane 組成（先出者為低位）。
func (s *Stream[T]) Uint64() uint64 {
	if wordBits[T]() == 64 {
		return uint64(s.Next())
	}
	lo := uint64(s.Next())
	hi := uint64(s.Next())
	return hi<<32 | lo
}

// Float64 回傳 [0,1) 的浮點數（53-bit 精度）。
func (s *Stream[T]) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// 快照格式：[W, N, lane] + key(N/2) + ctr(N)，每個字以 8 bytes big-endian 存放。
func (s *Stream[T]) snapshotLen() int {
	return 3 + 8*(s.p.KeyLen()+s.p.N)
}

// MarshalBinary 取得目前位置。
func (s *Stream[T]) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, s.snapshotLen())
	b = append(b, byte(wordBits[T]()), byte(s.p.N), byte(s.lane))
	for i := 0; i < s.p.KeyLen(); i++ {
		b = binary.BigEndian.AppendUint64(b, uint64(s.key[i]))
	}
	for i := 0; i < s.p.N; i++ {
		b = binary.BigEndian.AppendUint64(b, uint64(s.ctr[i]))
	}
	return b, nil
}

// UnmarshalBinary 還原位置；字寬與 N 必須與目前 variant 一致。
func (s *Stream[T]) UnmarshalBinary(data []byte) error {
	if len(data) != s.snapshotLen() {
		return errs.Warnf("philox restore: want %d bytes, got %d", s.snapshotLen(), len(data))
	}
	if int(data[0]) != wordBits[T]() || int(data[1]) != s.p.N {
		return errs.NewWithExtra(errs.Warn, "philox restore: variant mismatch", s.p.Name)
	}
	lane := int(data[2])
	if lane >= s.p.N {
		return errs.Warnf("philox restore: lane %d out of range", lane)
	}
	var key Key[T]
	var ctr Counter[T]
	off := 3
	for i := 0; i < s.p.KeyLen(); i++ {
		v := binary.BigEndian.Uint64(data[off:])
		if uint64(T(v)) != v {
			return errs.Warnf("philox restore: key word %d overflows %d bits", i, wordBits[T]())
		}
		key[i] = T(v)
		off += 8
	}
	for i := 0; i < s.p.N; i++ {
		v := binary.BigEndian.Uint64(data[off:])
		if uint64(T(v)) != v {
			return errs.Warnf("philox restore: counter word %d overflows %d bits", i, wordBits[T]())
		}
		ctr[i] = T(v)
		off += 8
	}
	s.key = key
	s.ctr = ctr
	s.lane = lane
	s.valid = false
	return nil
}
