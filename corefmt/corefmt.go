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

// Package corefmt 把引擎快照（MarshalBinary 的結果）轉成可放進 URL / JSON 的文字。
package corefmt

import (
	"encoding"
	"encoding/base64"

	"github.com/zintix-labs/goldenrng/errs"
)

// EncodeBase64URL 無 padding，可直接當 query 參數。
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		e := errs.NewWarn("decode base64url failed")
		e.Cause = err
		return nil, e
	}
	return b, nil
}

// EncodeSnap 取快照並編碼。
func EncodeSnap(m encoding.BinaryMarshaler) (string, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return "", errs.Wrap(err, "snapshot failed")
	}
	return EncodeBase64URL(b), nil
}

// DecodeSnap 解碼後還原到 u；u 自己負責檢查參數是否相符。
func DecodeSnap(s string, u encoding.BinaryUnmarshaler) error {
	b, err := DecodeBase64URL(s)
	if err != nil {
		return err
	}
	return u.UnmarshalBinary(b)
}
