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
	"log/slog"
	"net/http"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/golden"
	"github.com/zintix-labs/goldenrng/server/httperr"
	"github.com/zintix-labs/goldenrng/server/netsvr"
)

// GoldenHandler 提供內建 fixtures 的 golden 檔，並驗證上傳的 golden 檔。
type GoldenHandler struct {
	set     golden.Set
	length  int // 上傳的每個 case 必須恰有 length 個輸出
	workers int
	maxBody int64
	log     *slog.Logger
}

// NewGoldenHandler 啟動時先把 fixtures 全部算好，之後只讀。
func NewGoldenHandler(fx *golden.Fixtures, workers int, maxBody int64, log *slog.Logger) (*GoldenHandler, error) {
	if fx == nil {
		return nil, errs.NewFatal("fixtures are required")
	}
	set, err := fx.Build()
	if err != nil {
		return nil, errs.Wrap(err, "build golden suites")
	}
	return &GoldenHandler{set: set, length: fx.Length, workers: max(1, workers), maxBody: maxBody, log: log}, nil
}

// Suite : GET /v1/golden/{suite} → <suite>.dat 文字
func (h *GoldenHandler) Suite(w http.ResponseWriter, r *http.Request) {
	s, err := golden.ParseSuite(netsvr.Param(r, "suite"))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	cases := h.set[s]
	if len(cases) == 0 {
		httperr.Errs(w, errs.Warnf("suite %s has no fixtures", s))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+s.FileName()+`"`)
	if err := golden.WriteSuite(w, cases); err != nil {
		httperr.Log(h.log, "write golden suite", err)
	}
}

// VerifyResponse 為 /v1/golden/verify 的回應。
type VerifyResponse struct {
	Suite string `json:"suite"`
	OK    bool   `json:"ok"`
	*golden.Report
}

// Verify : POST /v1/golden/verify?suite=<suite>，body 為 .dat 內容。
//
// 不一致仍回 200（ok=false 並列出每個 case 的結果）；body 無法解析或輸出數不等於
// fixtures 的 length 時回 4xx。
func (h *GoldenHandler) Verify(w http.ResponseWriter, r *http.Request) {
	s, err := golden.ParseSuite(r.URL.Query().Get("suite"))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	defer body.Close()

	cases, err := golden.ReadSuite(body, s)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if len(cases) == 0 {
		httperr.Errs(w, errs.NewWarn("empty golden body"))
		return
	}
	if err := (golden.Set{s: cases}).CheckLength(h.length); err != nil {
		httperr.Errs(w, err)
		return
	}

	rep, err := golden.VerifyAll(r.Context(), golden.Set{s: cases}, h.workers, false)
	if err != nil {
		httperr.Log(h.log, "golden verify", err)
		httperr.Errs(w, err)
		return
	}
	if !rep.OK() && h.log != nil {
		h.log.Warn("golden mismatch", slog.String("suite", string(s)), slog.Int("failed", rep.Failed))
	}
	writeJSON(w, VerifyResponse{Suite: string(s), OK: rep.OK(), Report: rep})
}
