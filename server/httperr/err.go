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

// Package httperr 把 errs 的分級映射到 HTTP 狀態碼。
// 放在 server/* 而不是 errs，核心錯誤包不依賴 net/http。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/server/logger"
)

// StatusCode 將錯誤映射成 HTTP status code。
//
//   - ctx timeout/cancel  → 504/408
//   - 請求 body 過大      → 413
//   - errs.Warn           → 400（請求/參數問題，含 golden mismatch）
//   - errs.Fatal 與其他   → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	if errs.Level(err) == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Body 為錯誤回應的 JSON 格式。
type Body struct {
	Error string `json:"error"`
	Level string `json:"level,omitempty"`
}

// Errs 寫回 JSON 錯誤；err 為 nil 時不做事。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Error: err.Error(), Level: errs.Level(err).String()})
}

// Log 只記錄伺服器端需要注意的錯誤：408 記 warn，5xx 記 error，其他 4xx 交給 access log。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status == http.StatusRequestTimeout:
		log.Warn(msg, logger.Err(err))
	case status >= 500:
		log.Error(msg, logger.Err(err))
	}
}
