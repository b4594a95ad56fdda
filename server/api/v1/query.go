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

// Package v1 為 /v1 路由的 handler。
package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/goldenrng/errs"
)

// 數值參數接受十進位或 0x 十六進位。

// queryUint 讀取可選的 uint64 參數；缺省時回傳 (def, false, nil)。
func queryUint(r *http.Request, name string, def uint64) (uint64, bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, errs.Warnf("%s must be an unsigned 64-bit integer, got %q", name, s)
	}
	return v, true, nil
}

// queryInt 讀取可選的整數參數並檢查範圍 [lo, hi]。
func queryInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Warnf("%s must be an integer, got %q", name, s)
	}
	if v < lo || v > hi {
		return 0, errs.Warnf("%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return v, nil
}

// queryList 讀取逗號分隔的 uint64 清單，例如 ctr=1,2,3,4。
func queryList(r *http.Request, name string) ([]uint64, error) {
	s := strings.TrimSuffix(r.URL.Query().Get(name), ",")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return nil, errs.Warnf("%s[%d] must be an unsigned 64-bit integer, got %q", name, i, p)
		}
		out[i] = v
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
