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

// Package server 組裝 HTTP 服務：設定驗證、路由註冊、生命週期。
//
// 所有依賴都經由 svrcfg.SvrCfg 注入；server 不讀環境變數也不綁檔案路徑。
package server

import (
	"log/slog"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/server/api"
	"github.com/zintix-labs/goldenrng/server/app"
	"github.com/zintix-labs/goldenrng/server/logger"
	"github.com/zintix-labs/goldenrng/server/netsvr"
	"github.com/zintix-labs/goldenrng/server/svrcfg"
)

// New 驗證設定並回傳已註冊好路由的 server（尚未啟動）。
func New(sCfg *svrcfg.SvrCfg) (*netsvr.ChiAdapter, error) {
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(sCfg.Addr, sCfg.Timeouts)
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, errs.Wrap(err, "register routes")
	}
	return svr, nil
}

// Run 以內建的 chi server 啟動，阻塞到收到 SIGINT/SIGTERM 或 server 結束。
func Run(sCfg *svrcfg.SvrCfg) error {
	svr, err := New(sCfg)
	if err != nil {
		return err
	}
	sCfg.Log.Info("[goldenrng] listening", slog.String("addr", "http://localhost"+svr.Address()))
	return serve(sCfg.Log, svr)
}

// RunWithSvr 把路由掛到呼叫端提供的 NetSvr 上再啟動（自訂 listener、TLS 等）。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("chi server is not ready")
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return errs.Wrap(err, "register routes")
	}
	sCfg.Log.Info("[goldenrng] listening")
	return serve(sCfg.Log, svr)
}

func serve(log *slog.Logger, svr netsvr.NetSvr) error {
	if err := app.NewWith(log, svr).Run(); err != nil {
		log.Error("app stopped", logger.Err(err))
		return err
	}
	return nil
}
