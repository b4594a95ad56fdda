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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/goldenrng/server"
	"github.com/zintix-labs/goldenrng/server/svrcfg"
)

// lab server：預設開在 :5808，flag 覆寫設定檔的值。
func main() {
	sCfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := server.Run(sCfg); err != nil {
		os.Exit(1)
	}
}

type config struct {
	Path     string
	Addr     string
	LogMode  string
	Workers  int
	Fixtures string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.Path, "config", "", "server config yaml")
	flag.StringVar(&cfg.Addr, "addr", "", "listen address (default :5808)")
	flag.StringVar(&cfg.LogMode, "log-mode", "", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.IntVar(&cfg.Workers, "workers", 0, "verify workers per request")
	flag.StringVar(&cfg.Fixtures, "fixtures", "", "fixtures yaml served by /v1/golden")

	flag.Parse()

	fc := new(svrcfg.FileCfg)
	if cfg.Path != "" {
		var err error
		if fc, err = svrcfg.Load(cfg.Path); err != nil {
			return nil, err
		}
	}
	cfg.override(fc)
	return fc.Build()
}

// 只覆寫有給值的 flag
func (cfg *config) override(fc *svrcfg.FileCfg) {
	if cfg.Addr != "" {
		fc.Addr = cfg.Addr
	}
	if cfg.LogMode != "" {
		fc.LogMode = cfg.LogMode
	}
	if cfg.Workers > 0 {
		fc.Workers = cfg.Workers
	}
	if cfg.Fixtures != "" {
		fc.Fixtures = cfg.Fixtures
	}
}
