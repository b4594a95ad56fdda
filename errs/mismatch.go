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

package errs

import "fmt"

// Mismatch 表示產出值與 golden vector 不一致。
//
// 這不是執行期錯誤，而是實作錯誤的證據（常數錯、漏進位、反元素分支錯）；
// 因此要帶足夠的上下文定位到哪個 variant、哪組輸入、第幾個 draw。
type Mismatch struct {
	Suite    string // variant 名稱，例如 philox4x32
	Inputs   string // 原始輸入，例如 "key=..;ctr=..;jump=.."
	Index    int    // 第幾個輸出（0 起算）
	Lane     int    // counter-based 時為 block 內的 lane；LCG 固定為 -1
	Expected uint64
	Actual   uint64
}

func (m *Mismatch) Error() string {
	if m.Lane >= 0 {
		return fmt.Sprintf("golden mismatch suite=%s [%s] draw=%d lane=%d expected=%d actual=%d",
			m.Suite, m.Inputs, m.Index, m.Lane, m.Expected, m.Actual)
	}
	return fmt.Sprintf("golden mismatch suite=%s [%s] draw=%d expected=%d actual=%d",
		m.Suite, m.Inputs, m.Index, m.Expected, m.Actual)
}
