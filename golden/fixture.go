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
	_ "embed"
	"os"
	"strconv"

	"github.com/zintix-labs/goldenrng/errs"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Number 接受十進位或 0x 十六進位的 uint64。
// 自行解析 node.Value，不依賴 YAML 對超過 int64 的整數的解讀。
type Number uint64

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseUint(value.Value, 0, 64)
	if err != nil {
		e := errs.Warnf("fixture number %q at line %d", value.Value, value.Line)
		e.Cause = err
		return e
	}
	*n = Number(v)
	return nil
}

// FixtureCase 為一個 case 的輸入；gen 由引擎產出。
type FixtureCase struct {
	Seed *Number  `yaml:"seed"`
	Key  []Number `yaml:"key"`
	Ctr  []Number `yaml:"ctr"`
	Jump *Number  `yaml:"jump"`
}

type FixtureSuite struct {
	Suite string        `yaml:"suite"`
	Cases []FixtureCase `yaml:"cases"`
}

// Fixtures 為整份輸入設定。
type Fixtures struct {
	Length int            `yaml:"length"`
	Suites []FixtureSuite `yaml:"suites"`
}

// DefaultFixtures 回傳內建（golden/testdata 所用）的輸入。
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures 由檔案讀取。
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read fixtures %s", path)
	}
	return ParseFixtures(data)
}

// ParseFixtures 解析 YAML；length 缺省為 DefaultLength。
func ParseFixtures(data []byte) (*Fixtures, error) {
	fx := new(Fixtures)
	if err := yaml.Unmarshal(data, fx); err != nil {
		if _, ok := errs.AsErr(err); ok {
			return nil, errs.Wrap(err, "parse fixtures")
		}
		e := errs.NewWarn("parse fixtures")
		e.Cause = err
		return nil, e
	}
	if fx.Length == 0 {
		fx.Length = DefaultLength
	}
	if fx.Length < 0 {
		return nil, errs.Warnf("fixtures: length must be > 0, got %d", fx.Length)
	}
	return fx, nil
}

// Cases 把 fixture 轉成 Case（不含 gen）。
func (fx *Fixtures) Cases() (Set, error) {
	set := make(Set)
	for _, fs := range fx.Suites {
		s, err := ParseSuite(fs.Suite)
		if err != nil {
			return nil, err
		}
		for i, fc := range fs.Cases {
			c := Case{Suite: s, Key: toUints(fc.Key), Ctr: toUints(fc.Ctr)}
			if fc.Seed != nil {
				c.Seed = uint64(*fc.Seed)
			}
			if fc.Jump != nil {
				c.Jump = uint64(*fc.Jump)
				c.HasJump = true
			}
			if s.IsLCG() && fc.Seed == nil {
				return nil, errs.Warnf("fixtures %s case %d: seed is required", s, i)
			}
			if err := c.checkShape(); err != nil {
				return nil, errs.Wrapf(err, "fixtures %s case %d", s, i)
			}
			set[s] = append(set[s], c)
		}
	}
	return set, nil
}

// Build 產生完整的 golden set（含 gen）。
func (fx *Fixtures) Build() (Set, error) {
	set, err := fx.Cases()
	if err != nil {
		return nil, err
	}
	for s, cs := range set {
		for i := range cs {
			if err := Fill(&cs[i], fx.Length); err != nil {
				return nil, errs.Wrapf(err, "build %s case %d", s, i)
			}
			// 產出的檔案必須能被 ReadSuite 讀回
			if err := cs[i].checkGen(); err != nil {
				return nil, errs.Wrapf(err, "build %s case %d", s, i)
			}
		}
	}
	return set, nil
}

func toUints(ns []Number) []uint64 {
	if len(ns) == 0 {
		return nil
	}
	out := make([]uint64, len(ns))
	for i, n := range ns {
		out[i] = uint64(n)
	}
	return out
}
