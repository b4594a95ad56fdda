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
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/golden"
	"github.com/zintix-labs/goldenrng/sdk/perf"
	"github.com/zintix-labs/goldenrng/server/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	out      string
	verify   string
	fixtures string
	zst      bool
	workers  int
	showpb   bool
	logMode  string
	pprofArg string

	pprof perf.Mode
	log   *slog.Logger
	exit  int
}

func bindVar() error {
	flag.StringVar(&cfg.out, "out", "build/golden", "output dir for generated .dat files")
	flag.StringVar(&cfg.verify, "verify", "", "verify .dat files in dir instead of generating")
	flag.StringVar(&cfg.fixtures, "fixtures", "", "fixtures yaml; its length also bounds -verify (default: built-in)")
	flag.BoolVar(&cfg.zst, "zst", false, "write zstd compressed .dat.zst")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of verify workers")
	flag.BoolVar(&cfg.showpb, "pb", true, "show progress bar while verifying")
	flag.StringVar(&cfg.logMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.StringVar(&cfg.pprofArg, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()
	return cfg.valid()
}

func (cfg *config) valid() error {
	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		return err
	}
	cfg.log = logger.NewDefaultLogger(mode)

	if cfg.pprof, err = perf.ParseMode(cfg.pprofArg); err != nil {
		return err
	}
	// 工作協程檢查(併發數)
	if cfg.workers < 1 {
		return errs.Warnf("workers must > 0, got %d", cfg.workers)
	}
	if cfg.verify == "" && cfg.out == "" {
		return errs.NewWarn("one of -out or -verify is required")
	}
	return nil
}

// 這裡分支 generate / verify
func execute() {
	var err error
	if cfg.verify != "" {
		err = verify()
	} else {
		err = generate()
	}
	if err != nil {
		cfg.log.Error("golden failed", logger.Err(err))
		cfg.exit = 1
	}
}

const (
	green = "\033[1;32m"
	red   = "\033[1;31m"
	reset = "\033[0m"
)

func generate() error {
	fx, err := loadFixtures()
	if err != nil {
		return err
	}
	set, err := fx.Build()
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Printf("%s[GENERATE] [SUITES:%d] [CASES:%d] [LENGTH:%d]%s\n", green, len(set), set.Count(), fx.Length, reset)

	paths, err := golden.SaveDir(cfg.out, set, cfg.zst)
	for _, path := range paths {
		cfg.log.Info("written", slog.String("path", path))
	}
	return err
}

func verify() error {
	fx, err := loadFixtures()
	if err != nil {
		return err
	}
	set, err := golden.LoadDir(cfg.verify)
	if err != nil {
		return err
	}
	if err := set.CheckLength(fx.Length); err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Printf("%s[VERIFY:%s] [WORKERS:%d] [SUITES:%d] [CASES:%d]%s\n", green, cfg.verify, cfg.workers, len(set), set.Count(), reset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := golden.VerifyAll(ctx, set, cfg.workers, cfg.showpb)
	if rep != nil {
		fmt.Print(rep.Table())
		for _, m := range rep.Mismatches() {
			fmt.Printf("%s%s%s\n", red, m.Error(), reset)
		}
	}
	if err != nil {
		return err
	}
	return rep.Err()
}

func loadFixtures() (*golden.Fixtures, error) {
	if cfg.fixtures == "" {
		return golden.DefaultFixtures()
	}
	return golden.LoadFixtures(cfg.fixtures)
}
