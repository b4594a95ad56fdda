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
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/goldenrng/errs"
)

const zstExt = ".zst"

// WriteSuite 逐行寫出 case（每行以 '\n' 結尾）。
func WriteSuite(w io.Writer, cases []Case) error {
	bw := bufio.NewWriter(w)
	for _, c := range cases {
		if _, err := bw.WriteString(c.String()); err != nil {
			return errs.Wrap(err, "write golden line")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errs.Wrap(err, "write golden line")
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.Wrap(err, "flush golden suite")
	}
	return nil
}

// ReadSuite 讀取一個 suite；空行略過，錯誤訊息帶行號。
func ReadSuite(r io.Reader, s Suite) ([]Case, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	var out []Case
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		c, err := ParseLine(s, line)
		if err != nil {
			return nil, errs.Wrapf(err, "%s line %d", s.FileName(), ln)
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrapf(err, "scan %s", s.FileName())
	}
	return out, nil
}

// LoadFile 讀取單一檔案，suite 由檔名決定；.zst 結尾時先以 zstd 解壓。
func LoadFile(path string) (Suite, []Case, error) {
	s, err := ParseSuite(path)
	if err != nil {
		return "", nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return s, nil, errs.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, zstExt) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return s, nil, errs.Wrap(err, "create zstd reader failed")
		}
		defer zr.Close()
		r = zr
	}
	cases, err := ReadSuite(r, s)
	return s, cases, err
}

// SaveFile 寫出單一 suite；compress 為 true 時輸出 <suite>.dat.zst。
func SaveFile(dir string, s Suite, cases []Case, compress bool) (string, error) {
	path := filepath.Join(dir, s.FileName())
	if compress {
		path += zstExt
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errs.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if !compress {
		if err := WriteSuite(f, cases); err != nil {
			return "", err
		}
		return path, f.Close()
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return "", errs.Wrap(err, "create zstd writer")
	}
	if err := WriteSuite(zw, cases); err != nil {
		_ = zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", errs.Wrap(err, "close zstd writer")
	}
	return path, f.Close()
}

// SaveDir 寫出整個 set，回傳寫入的路徑。
func SaveDir(dir string, set Set, compress bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "mkdir %s", dir)
	}
	var paths []string
	for _, s := range set.Suites() {
		p, err := SaveFile(dir, s, set[s], compress)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// LoadDir 讀取目錄內所有已知 suite（.dat 優先於 .dat.zst）；一個都沒有時回傳錯誤。
func LoadDir(dir string) (Set, error) {
	set := make(Set)
	for _, s := range Suites() {
		for _, name := range []string{s.FileName(), s.FileName() + zstExt} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				continue
			}
			_, cases, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			set[s] = cases
			break
		}
	}
	if len(set) == 0 {
		return nil, errs.Warnf("no golden suites found in %s", dir)
	}
	return set, nil
}
