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

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/goldenrng/golden"
	"github.com/zintix-labs/goldenrng/sdk/lcg"
	"github.com/zintix-labs/goldenrng/sdk/philox"
	v1 "github.com/zintix-labs/goldenrng/server/api/v1"
	"github.com/zintix-labs/goldenrng/server/netsvr"
	"github.com/zintix-labs/goldenrng/server/netsvr/middleware"
	"github.com/zintix-labs/goldenrng/server/svrcfg"
)

// RegisterRoutes 註冊 middleware 與所有路由。sCfg 需先經過 Valid。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", index)
	return registerV1API(svr, sCfg)
}

// 順序：request id → access log → recover → 壓縮
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

// IndexResponse 列出可用的 variant 與 suite。
type IndexResponse struct {
	LCG    []string `json:"lcg"`
	Philox []string `json:"philox"`
	Suites []string `json:"suites"`
	Stats  []string `json:"stats"`
}

func index(w http.ResponseWriter, r *http.Request) {
	resp := IndexResponse{
		Philox: []string{philox.Philox2x32.Name, philox.Philox2x64.Name, philox.Philox4x32.Name, philox.Philox4x64.Name},
	}
	for _, p := range lcg.Variants() {
		resp.LCG = append(resp.LCG, p.Name)
	}
	for _, s := range golden.Suites() {
		resp.Suites = append(resp.Suites, string(s))
	}
	resp.Stats = append(append(append(resp.Stats, resp.LCG...), resp.Philox...), v1.CoreVariant)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	eh, err := v1.NewEngineHandler(sCfg.MaxDraws)
	if err != nil {
		return err
	}
	gh, err := v1.NewGoldenHandler(sCfg.Fixtures, sCfg.Workers, sCfg.MaxBody, sCfg.Log)
	if err != nil {
		return err
	}
	sh, err := v1.NewStatsHandler(sCfg.MaxSamples)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/lcg/{variant}", eh.LCG)
		vOne.Get("/philox/{variant}", eh.Philox)

		vOne.Get("/golden/{suite}", gh.Suite)
		vOne.Post("/golden/verify", gh.Verify)

		vOne.Get("/stats/{variant}", sh.Uniformity)
	})
	return nil
}
