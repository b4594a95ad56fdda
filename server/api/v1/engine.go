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

package v1

import (
	"net/http"

	"github.com/zintix-labs/goldenrng/corefmt"
	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/golden"
	"github.com/zintix-labs/goldenrng/sdk/lcg"
	"github.com/zintix-labs/goldenrng/sdk/philox"
	"github.com/zintix-labs/goldenrng/server/httperr"
	"github.com/zintix-labs/goldenrng/server/netsvr"
)

// EngineHandler 直接從引擎取值：/v1/lcg/{variant}、/v1/philox/{variant}。
type EngineHandler struct {
	MaxDraws int
}

func NewEngineHandler(maxDraws int) (*EngineHandler, error) {
	if maxDraws < 1 {
		return nil, errs.Warnf("max draws must be >= 1, got %d", maxDraws)
	}
	return &EngineHandler{MaxDraws: maxDraws}, nil
}

// LCGResponse 為 /v1/lcg 的回應。
type LCGResponse struct {
	Variant string   `json:"variant"`
	A       uint64   `json:"a"`
	C       uint64   `json:"c"`
	M       uint64   `json:"m"`
	Seed    uint64   `json:"seed"`
	Jump    uint64   `json:"jump"`
	Values  []uint64 `json:"values"`
	State   uint64   `json:"state"` // 最後一個輸出後的狀態
	Snap    string   `json:"snap"`  // base64url 快照，帶回 ?snap= 可接續
}

// LCG : GET /v1/lcg/{variant}?seed=&jump=&n=&snap=
//
// 有 snap 時以快照狀態為起點，seed 只作為回應欄位。
func (h *EngineHandler) LCG(w http.ResponseWriter, r *http.Request) {
	variant := netsvr.Param(r, "variant")
	p, ok := lcg.Lookup(variant)
	if !ok {
		httperr.Errs(w, errs.Warnf("unknown lcg variant %q", variant))
		return
	}
	seed, _, err := queryUint(r, "seed", lcg.DefaultSeed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	jump, _, err := queryUint(r, "jump", 0)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryInt(r, "n", golden.DefaultLength, 1, h.MaxDraws)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	e := lcg.New(p, seed)
	if snap := r.URL.Query().Get("snap"); snap != "" {
		if err := corefmt.DecodeSnap(snap, &e); err != nil {
			httperr.Errs(w, err)
			return
		}
	}
	e.Discard(jump)
	values := make([]uint64, n)
	e.Fill(values)
	snap, err := corefmt.EncodeSnap(e)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	writeJSON(w, LCGResponse{
		Variant: p.Name,
		A:       p.A,
		C:       p.C,
		M:       p.M,
		Seed:    seed,
		Jump:    jump,
		Values:  values,
		State:   e.State(),
		Snap:    snap,
	})
}

// PhiloxResponse 為 /v1/philox 的回應。Ctr 為起始 counter（jump 前），Next 為下一個未用的 counter。
type PhiloxResponse struct {
	Variant string   `json:"variant"`
	Rounds  int      `json:"rounds"`
	Key     []uint64 `json:"key"`
	Ctr     []uint64 `json:"ctr"`
	Jump    uint64   `json:"jump"`
	Values  []uint64 `json:"values"`
	Next    []uint64 `json:"next"`
}

// Philox : GET /v1/philox/{variant}?key=&ctr=&jump=&n=&rounds=
//
// key / ctr 為逗號分隔的字，不足的高位 lane 補 0；jump 以 counter 步數計。
func (h *EngineHandler) Philox(w http.ResponseWriter, r *http.Request) {
	key, err := queryList(r, "key")
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctr, err := queryList(r, "ctr")
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	jump, _, err := queryUint(r, "jump", 0)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryInt(r, "n", golden.DefaultLength, 1, h.MaxDraws)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	rounds, err := queryInt(r, "rounds", philox.DefaultRounds, 1, 16)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	req := philoxRequest{key: key, ctr: ctr, jump: jump, n: n, rounds: rounds}

	var resp *PhiloxResponse
	switch variant := netsvr.Param(r, "variant"); variant {
	case philox.Philox2x32.Name:
		resp, err = drawPhilox(philox.Philox2x32, req)
	case philox.Philox4x32.Name:
		resp, err = drawPhilox(philox.Philox4x32, req)
	case philox.Philox2x64.Name:
		resp, err = drawPhilox(philox.Philox2x64, req)
	case philox.Philox4x64.Name:
		resp, err = drawPhilox(philox.Philox4x64, req)
	default:
		err = errs.Warnf("unknown philox variant %q", variant)
	}
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, resp)
}

type philoxRequest struct {
	key, ctr []uint64
	jump     uint64
	n        int
	rounds   int
}

func drawPhilox[T philox.Word](p philox.Params[T], req philoxRequest) (*PhiloxResponse, error) {
	p = p.WithRounds(req.rounds)
	if len(req.key) > p.KeyLen() {
		return nil, errs.Warnf("%s: key has at most %d words, got %d", p.Name, p.KeyLen(), len(req.key))
	}
	if len(req.ctr) > p.N {
		return nil, errs.Warnf("%s: ctr has at most %d words, got %d", p.Name, p.N, len(req.ctr))
	}
	limit := uint64(^T(0))
	var key philox.Key[T]
	var ctr philox.Counter[T]
	for i, v := range req.key {
		if v > limit {
			return nil, errs.Warnf("%s: key[%d]=%d exceeds %d bits", p.Name, i, v, p.WordBits())
		}
		key[i] = T(v)
	}
	for i, v := range req.ctr {
		if v > limit {
			return nil, errs.Warnf("%s: ctr[%d]=%d exceeds %d bits", p.Name, i, v, p.WordBits())
		}
		ctr[i] = T(v)
	}

	s := philox.NewStream(p, key, ctr)
	s.Jump(req.jump)
	values := make([]uint64, req.n)
	for i := range values {
		values[i] = uint64(s.Next())
	}

	resp := &PhiloxResponse{
		Variant: p.Name,
		Rounds:  p.Rounds,
		Key:     words(key[:p.KeyLen()]),
		Ctr:     words(ctr[:p.N]),
		Jump:    req.jump,
		Values:  values,
	}
	next := s.Counter()
	if s.Lane() != 0 {
		// 目前 block 已部分使用，下一個完整 block 在 counter+1
		p.Incr(&next)
	}
	resp.Next = words(next[:p.N])
	return resp, nil
}

func words[T philox.Word](ws []T) []uint64 {
	out := make([]uint64, len(ws))
	for i, w := range ws {
		out[i] = uint64(w)
	}
	return out
}
