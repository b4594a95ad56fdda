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

package golden

import (
	"math/bits"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/sdk/lcg"
	"github.com/zintix-labs/goldenrng/sdk/philox"
)

// Produce 依 case 的輸入跑對應引擎，產出 n 個輸出值。c.Gen 不參與計算。
func Produce(c Case, n int) ([]uint64, error) {
	if n < 0 {
		return nil, errs.Warnf("produce: negative length %d", n)
	}
	if err := c.checkShape(); err != nil {
		return nil, err
	}
	switch c.Suite {
	case MinStdRand, Rand48:
		return produceLCG(c.Suite.lcgParams(), c, n), nil
	case Philox2x32:
		return producePhilox(philox.Philox2x32, c, n)
	case Philox2x64:
		return producePhilox(philox.Philox2x64, c, n)
	case Philox4x32:
		return producePhilox(philox.Philox4x32, c, n)
	case Philox4x64:
		return producePhilox(philox.Philox4x64, c, n)
	default:
		return nil, errs.Warnf("produce: unknown suite %q", c.Suite)
	}
}

func produceLCG(p lcg.Params, c Case, n int) []uint64 {
	e := lcg.New(p, c.Seed)
	if c.HasJump {
		e.Discard(c.Jump)
	}
	out := make([]uint64, n)
	e.Fill(out)
	return out
}

func producePhilox[T philox.Word](p philox.Params[T], c Case, n int) ([]uint64, error) {
	var key philox.Key[T]
	var ctr philox.Counter[T]
	for i, v := range c.Key {
		key[i] = T(v)
	}
	for i, v := range c.Ctr {
		ctr[i] = T(v)
	}
	s := philox.NewStream(p, key, ctr)
	if c.HasJump {
		s.Jump(c.Jump >> bits.TrailingZeros(uint(p.N)))
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(s.Next())
	}
	return out, nil
}

// Verify 重算 c.Gen 並逐值比對；第一個不一致回傳 *errs.Mismatch。
// gen 為空或不是完整 block 時回傳 errs.Warn，不視為通過。
func Verify(c Case) error {
	if err := c.checkGen(); err != nil {
		return err
	}
	got, err := Produce(c, len(c.Gen))
	if err != nil {
		return err
	}
	for i, want := range c.Gen {
		if got[i] == want {
			continue
		}
		lane := -1
		if !c.Suite.IsLCG() {
			lane = i % c.Suite.Lanes()
		}
		return &errs.Mismatch{
			Suite:    string(c.Suite),
			Inputs:   c.Inputs(),
			Index:    i,
			Lane:     lane,
			Expected: want,
			Actual:   got[i],
		}
	}
	return nil
}

// Fill 以引擎輸出填入 c.Gen（長度 n）。
func Fill(c *Case, n int) error {
	gen, err := Produce(*c, n)
	if err != nil {
		return err
	}
	c.Gen = gen
	return nil
}
