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

// Package logger 以 slog 組裝 server 與 CLI 共用的 logger。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/goldenrng/errs"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
)

func (m LogMode) String() string {
	switch m {
	case ModeDev:
		return "ModeDev"
	case ModeProd:
		return "ModeProd"
	case ModeSilence:
		return "ModeSilence"
	default:
		return "ModeUnknown"
	}
}

// ParseMode 接受 ModeDev|ModeProd|ModeSilence（或 dev|prod|silence，大小寫不拘）。
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(s, "Mode"), "mode")) {
	case "dev", "":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence":
		return ModeSilence, nil
	default:
		return ModeDev, errs.Warnf("unknown log mode %q", s)
	}
}

// NewDefaultLogger 依模式建立 logger：dev 寫 stderr（text），prod 寫 stdout（JSON）。
func NewDefaultLogger(mode LogMode) *slog.Logger {
	switch mode {
	case ModeProd:
		return New(mode, os.Stdout)
	default:
		return New(mode, os.Stderr)
	}
}

// New 依模式建立寫到 w 的 logger；w 為 nil 時等同 ModeSilence。
func New(mode LogMode, w io.Writer) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

// NewLogger 包裝呼叫端自行組裝的 Handler；nil 時退回 dev 模式。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev, os.Stderr)
	}
	return slog.New(h)
}

// Err 把錯誤展開成 group：msg 與 errs 的等級，方便 prod 模式依等級過濾。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Group("err",
		slog.String("msg", err.Error()),
		slog.String("lv", errs.Level(err).String()),
	)
}

func buildHandler(mode LogMode, w io.Writer) slog.Handler {
	if w == nil {
		mode = ModeSilence
	}
	switch mode {
	case ModeDev:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		// JSON 給 Loki / Promtail
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError + 1,
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
