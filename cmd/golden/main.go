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

// golden 產生或驗證 golden vector 檔案。
//
//	go run ./cmd/golden -out build/golden          # 寫出 6 個 .dat
//	go run ./cmd/golden -out build/golden -zst     # 寫出 .dat.zst
//	go run ./cmd/golden -verify golden/testdata    # 逐行重算比對
package main

import (
	"os"

	"github.com/zintix-labs/goldenrng/sdk/perf"
	"github.com/zintix-labs/goldenrng/server/logger"
)

// makefile runner
func main() {
	if err := bindVar(); err != nil {
		logger.NewDefaultLogger(logger.ModeDev).Error("invalid flags", logger.Err(err))
		os.Exit(2)
	}
	if _, err := perf.RunPProf(execute, cfg.pprof, ""); err != nil {
		cfg.log.Error("pprof failed", logger.Err(err))
	}
	os.Exit(cfg.exit)
}
