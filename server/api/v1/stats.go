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
	"fmt"
	"net/http"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/sdk/core"
	"github.com/zintix-labs/goldenrng/sdk/lcg"
	"github.com/zintix-labs/goldenrng/sdk/philox"
	"github.com/zintix-labs/goldenrng/server/httperr"
	"github.com/zintix-labs/goldenrng/server/netsvr"
	"github.com/zintix-labs/goldenrng/stats"
)

// CoreVariant 為 sdk/core 預設 PRNG 在 /v1/stats 的名稱。
const CoreVariant = "core"

const (
	defaultSamples = 100_000
	defaultBins    = 16
	maxBins        = 4096
)

type StatsHandler struct {
	MaxSamples int
}

func NewStatsHandler(maxSamples int) (*StatsHandler, error) {
	if maxSamples < 1 {
		return nil, errs.Warnf("max samples must be >= 1, got %d", maxSamples)
	}
	return &StatsHandler{MaxSamples: min(maxSamples, stats.MaxSamples)}, nil
}

// Uniformity : GET /v1/stats/{variant}?seed=&n=&bins=&format=json|yaml|table
func (h *StatsHandler) Uniformity(w http.ResponseWriter, r *http.Request) {
	variant := netsvr.Param(r, "variant")
	seed, _, err := queryUint(r, "seed", lcg.DefaultSeed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	bins, err := queryInt(r, "bins", defaultBins, 2, maxBins)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryInt(r, "n", min(defaultSamples, h.MaxSamples), bins*5, h.MaxSamples)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	src, err := NewSource(variant, seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	rep, err := stats.ChiSquareUniform(variant, src, bins, n)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		err = (&stats.JsonReportRender{}).Write(w, rep)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		err = (&stats.YAMLReportRender{}).Write(w, rep)
	case "table":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, err = fmt.Fprint(w, rep.String())
	default:
		httperr.Errs(w, errs.Warnf("unknown format %q", format))
		return
	}
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "render report"))
	}
}

// NewSource 依 variant 名稱建立 [0,1) 浮點序列：
//   - LCG：以 seed 起始。
//   - Philox：key 由 seed 拆成字（低位在前，放不下的高位捨棄），counter 從 0 起。
//   - core：sdk/core 的預設 PRNG。
func NewSource(variant string, seed uint64) (stats.Source, error) {
	if p, ok := lcg.Lookup(variant); ok {
		e := lcg.New(p, seed)
		return &e, nil
	}
	switch variant {
	case philox.Philox2x32.Name:
		s := philox.NewStream(philox.Philox2x32, philox.Key[uint32]{uint32(seed)}, philox.Counter[uint32]{})
		return &s, nil
	case philox.Philox4x32.Name:
		s := philox.NewStream(philox.Philox4x32, philox.Key[uint32]{uint32(seed), uint32(seed >> 32)}, philox.Counter[uint32]{})
		return &s, nil
	case philox.Philox2x64.Name:
		s := philox.NewStream(philox.Philox2x64, philox.Key[uint64]{seed}, philox.Counter[uint64]{})
		return &s, nil
	case philox.Philox4x64.Name:
		s := philox.NewStream(philox.Philox4x64, philox.Key[uint64]{seed}, philox.Counter[uint64]{})
		return &s, nil
	case CoreVariant:
		return core.Default().New(int64(seed)), nil
	}
	return nil, errs.Warnf("unknown variant %q", variant)
}
