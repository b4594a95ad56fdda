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

package golden

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/goldenrng/errs"
)

// Case 為 golden 檔的一行。
//
// Jump 的單位依家族不同：
//   - LCG：要 discard 的輸出數。
//   - Philox：以「輸出字數」記錄，實際 counter 前進 Jump >> log2(N)。
type Case struct {
	Suite   Suite
	Seed    uint64
	Key     []uint64
	Ctr     []uint64
	Jump    uint64
	HasJump bool
	Gen     []uint64
}

// Inputs 回傳 gen 之前的輸入部分，例如 "seed=1;jump=2"。
func (c Case) Inputs() string {
	var sb strings.Builder
	if c.Suite.IsLCG() {
		sb.WriteString("seed=")
		sb.WriteString(strconv.FormatUint(c.Seed, 10))
	} else {
		sb.WriteString("key=")
		writeList(&sb, c.Key, false)
		sb.WriteString(";ctr=")
		writeList(&sb, c.Ctr, false)
	}
	if c.HasJump {
		sb.WriteString(";jump=")
		sb.WriteString(strconv.FormatUint(c.Jump, 10))
	}
	return sb.String()
}

// String 輸出 .dat 的一行（gen 以逗號結尾，不含換行）。
func (c Case) String() string {
	var sb strings.Builder
	sb.WriteString(c.Inputs())
	sb.WriteString(";gen=")
	writeList(&sb, c.Gen, true)
	return sb.String()
}

func writeList(sb *strings.Builder, vs []uint64, trailing bool) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(v, 10))
	}
	if trailing && len(vs) > 0 {
		sb.WriteByte(',')
	}
}

// ParseLine 解析一行 golden 資料。
func ParseLine(s Suite, line string) (Case, error) {
	c := Case{Suite: s}
	line = strings.TrimSpace(line)
	if line == "" {
		return c, errs.NewWarn("empty golden line")
	}
	var seen struct{ seed, key, ctr, gen bool }
	for _, field := range strings.Split(line, ";") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return c, errs.Warnf("golden field %q: missing '='", field)
		}
		var err error
		switch k {
		case "seed":
			c.Seed, err = strconv.ParseUint(v, 10, 64)
			seen.seed = true
		case "jump":
			c.Jump, err = strconv.ParseUint(v, 10, 64)
			c.HasJump = true
		case "key":
			c.Key, err = parseList(v)
			seen.key = true
		case "ctr":
			c.Ctr, err = parseList(v)
			seen.ctr = true
		case "gen":
			c.Gen, err = parseList(v)
			seen.gen = true
		default:
			return c, errs.Warnf("golden field %q: unknown key", k)
		}
		if err != nil {
			e := errs.Warnf("golden field %q: bad value", k)
			e.Cause = err
			return c, e
		}
	}

	if !seen.gen {
		return c, errs.NewWithExtra(errs.Warn, "golden line has no gen field", line)
	}
	if s.IsLCG() {
		if !seen.seed || seen.key || seen.ctr {
			return c, errs.NewWithExtra(errs.Warn, "lcg line needs seed and no key/ctr", line)
		}
		return c, c.checkGen()
	}
	if seen.seed || !seen.key || !seen.ctr {
		return c, errs.NewWithExtra(errs.Warn, "philox line needs key and ctr and no seed", line)
	}
	if err := c.checkShape(); err != nil {
		return c, err
	}
	return c, c.checkGen()
}

// checkGen 檢查 gen 非空；philox 的 gen 必須是完整的 block。
func (c Case) checkGen() error {
	if len(c.Gen) == 0 {
		return errs.Warnf("%s: gen is empty", c.Suite)
	}
	if n := c.Suite.Lanes(); !c.Suite.IsLCG() && len(c.Gen)%n != 0 {
		return errs.Warnf("%s: gen has %d words, want a multiple of %d", c.Suite, len(c.Gen), n)
	}
	return nil
}

// checkShape 檢查 philox 的 key/ctr 字數與字寬，以及 gen 的字寬。
func (c Case) checkShape() error {
	if c.Suite.IsLCG() {
		return nil
	}
	n := c.Suite.Lanes()
	if len(c.Key) != n/2 {
		return errs.Warnf("%s: key needs %d words, got %d", c.Suite, n/2, len(c.Key))
	}
	if len(c.Ctr) != n {
		return errs.Warnf("%s: ctr needs %d words, got %d", c.Suite, n, len(c.Ctr))
	}
	if c.Suite.WordBits() == 32 {
		for _, group := range [][]uint64{c.Key, c.Ctr, c.Gen} {
			for _, v := range group {
				if v > 0xFFFFFFFF {
					return errs.Warnf("%s: value %d exceeds 32 bits", c.Suite, v)
				}
			}
		}
	}
	return nil
}

func parseList(v string) ([]uint64, error) {
	v = strings.TrimSuffix(v, ",")
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	out := make([]uint64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
