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

package svrcfg

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/golden"
	"github.com/zintix-labs/goldenrng/server/logger"
	"github.com/zintix-labs/goldenrng/server/netsvr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxDraws   = 4096
	DefaultMaxSamples = 1_000_000
	DefaultMaxBody    = 1 << 20

	maxDrawsCap = 1 << 20
)

// SvrCfg 為 server 組裝所需的全部依賴。零值欄位由 Valid 補上預設。
type SvrCfg struct {
	Log        *slog.Logger
	Addr       string
	Timeouts   netsvr.Timeouts
	Workers    int   // golden verify 的 worker 數
	MaxDraws   int   // 單次 /v1/lcg、/v1/philox 最多輸出數
	MaxSamples int   // 單次 /v1/stats 最多樣本數
	MaxBody    int64 // POST body 上限（bytes）
	Fixtures   *golden.Fixtures
}

// Valid 驗證並正規化設定。
func (sc *SvrCfg) Valid() error {
	if sc == nil {
		return errs.NewFatal("server config is required")
	}
	if sc.Log == nil {
		sc.Log = logger.NewDefaultLogger(logger.ModeDev)
	}
	if sc.Addr == "" {
		sc.Addr = netsvr.DefaultAddr
	}
	if sc.Workers < 1 {
		sc.Workers = runtime.NumCPU()
	}
	sc.Workers = min(sc.Workers, 64)

	if sc.MaxDraws < 1 {
		sc.MaxDraws = DefaultMaxDraws
	}
	sc.MaxDraws = min(sc.MaxDraws, maxDrawsCap)
	if sc.MaxSamples < 1 {
		sc.MaxSamples = DefaultMaxSamples
	}
	if sc.MaxBody < 1 {
		sc.MaxBody = DefaultMaxBody
	}

	if sc.Fixtures == nil {
		fx, err := golden.DefaultFixtures()
		if err != nil {
			return errs.Wrap(err, "load built-in fixtures")
		}
		sc.Fixtures = fx
	}
	return nil
}

// FileCfg 為 YAML 設定檔格式。
//
//	addr: ":5808"
//	log_mode: ModeProd
//	workers: 8
//	max_draws: 4096
//	max_samples: 1000000
//	write_timeout: 30s
//	fixtures: ./fixtures.yaml
type FileCfg struct {
	Addr         string `yaml:"addr"`
	LogMode      string `yaml:"log_mode"`
	Workers      int    `yaml:"workers"`
	MaxDraws     int    `yaml:"max_draws"`
	MaxSamples   int    `yaml:"max_samples"`
	MaxBody      int64  `yaml:"max_body"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
	Fixtures     string `yaml:"fixtures"`
}

// Load 讀取 YAML 設定檔。
func Load(path string) (*FileCfg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read server config %s", path)
	}
	return Parse(data)
}

// Parse 解析 YAML 設定；未知欄位視為錯誤。
func Parse(data []byte) (*FileCfg, error) {
	fc := new(FileCfg)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// 空檔案回傳 io.EOF，視為全部使用預設
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		e := errs.NewWarn("parse server config")
		e.Cause = err
		return nil, e
	}
	return fc, nil
}

// Build 轉成 SvrCfg（尚未 Valid）。
func (fc *FileCfg) Build() (*SvrCfg, error) {
	mode, err := logger.ParseMode(fc.LogMode)
	if err != nil {
		return nil, err
	}
	sc := &SvrCfg{
		Log:        logger.NewDefaultLogger(mode),
		Addr:       fc.Addr,
		Workers:    fc.Workers,
		MaxDraws:   fc.MaxDraws,
		MaxSamples: fc.MaxSamples,
		MaxBody:    fc.MaxBody,
	}
	if sc.Timeouts.Read, err = parseDuration("read_timeout", fc.ReadTimeout); err != nil {
		return nil, err
	}
	if sc.Timeouts.Write, err = parseDuration("write_timeout", fc.WriteTimeout); err != nil {
		return nil, err
	}
	if fc.Fixtures != "" {
		if sc.Fixtures, err = golden.LoadFixtures(fc.Fixtures); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		e := errs.Warnf("server config %s: %q", field, s)
		e.Cause = err
		return 0, e
	}
	return d, nil
}
