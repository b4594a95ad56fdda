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

// Package app 管理長期運行元件的啟動與優雅關閉。
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/zintix-labs/goldenrng/server/logger"
)

// DefaultShutdownTimeout 為優雅關閉的等待上限。
const DefaultShutdownTimeout = 5 * time.Second

// App 啟動所有註冊的 Component；收到 OS 信號、ctx 結束或任一 Component 返回時，統一關閉。
type App struct {
	comps   []Component
	log     *slog.Logger
	timeout time.Duration
}

// New 建立 App；log 為 nil 時不輸出。
func New(log *slog.Logger) *App {
	if log == nil {
		log = logger.New(logger.ModeSilence, nil)
	}
	return &App{log: log, timeout: DefaultShutdownTimeout}
}

// NewWith 建立時直接註冊多個 Component。
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

// Register 註冊 Component。
func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// SetShutdownTimeout 調整關閉等待上限（<= 0 忽略）。
func (a *App) SetShutdownTimeout(td time.Duration) {
	if td > 0 {
		a.timeout = td
	}
}

// Run 等同 RunContext(context.Background())，並監聽 SIGINT/SIGTERM。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 阻塞直到 ctx 結束（回傳 nil）或任一 Component.Run 返回（回傳其錯誤）。
// http.ErrServerClosed 視為正常結束。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown requested", slog.String("cause", context.Cause(ctx).Error()))
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}
	a.gracefulShutdown()
	return err
}

// gracefulShutdown 依註冊的反序關閉。
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	for i := len(a.comps) - 1; i >= 0; i-- {
		if err := a.comps[i].Shutdown(ctx); err != nil {
			a.log.Error("shutdown failed", logger.Err(err))
		}
	}
}
