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
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/goldenrng/errs"
	"github.com/zintix-labs/goldenrng/stats"
)

// Result 為單一 case 的驗證結果。Err 為 nil 表示通過。
type Result struct {
	Suite Suite  `json:"suite"`
	Index int    `json:"index"`
	Input string `json:"input"`
	Err   error  `json:"-"`
	Msg   string `json:"error,omitempty"`
}

// Report 為整個 set 的驗證結果，Results 依 suite 順序、case 順序排列。
type Report struct {
	Results []Result      `json:"results"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Used    time.Duration `json:"used"`
}

// OK 全部通過。
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Err 回傳第一個失敗的錯誤；全過時為 nil。
func (r *Report) Err() error {
	for _, res := range r.Results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// Mismatches 取出所有逐值不一致的結果。
func (r *Report) Mismatches() []*errs.Mismatch {
	var out []*errs.Mismatch
	for _, res := range r.Results {
		var m *errs.Mismatch
		if errors.As(res.Err, &m) {
			out = append(out, m)
		}
	}
	return out
}

// Table 以表格列出每個 suite 的通過數。
func (r *Report) Table() string {
	p := stats.Printer()
	pass := map[Suite]int{}
	total := map[Suite]int{}
	for _, res := range r.Results {
		total[res.Suite]++
		if res.Err == nil {
			pass[res.Suite]++
		}
	}
	keys := []string{}
	msg := map[string]string{}
	for _, s := range Suites() {
		if total[s] == 0 {
			continue
		}
		k := string(s)
		keys = append(keys, k)
		v := strconv.Itoa(pass[s]) + "/" + strconv.Itoa(total[s])
		if pass[s] != total[s] {
			v += " FAIL"
		}
		msg[k] = v
	}
	keys = append(keys, "Passed", "Failed", "Used")
	msg["Passed"] = p.Sprintf("%d", r.Passed)
	msg["Failed"] = p.Sprintf("%d", r.Failed)
	msg["Used"] = r.Used.Round(time.Microsecond).String()
	return stats.FmtTable("Golden Verify", keys, msg)
}

type job struct {
	pos int
	c   Case
}

// VerifyAll 以 workers 個 goroutine 驗證整個 set。
//
// ctx 取消時停止派發新 case，已完成的結果仍會回傳，同時回傳 ctx 的錯誤。
func VerifyAll(ctx context.Context, set Set, workers int, showpb bool) (*Report, error) {
	if workers < 1 {
		return nil, errs.Warnf("verify: workers must be >= 1, got %d", workers)
	}

	var jobs []job
	results := make([]Result, 0, set.Count())
	for _, s := range set.Suites() {
		for i, c := range set[s] {
			jobs = append(jobs, job{pos: len(results), c: c})
			results = append(results, Result{Suite: s, Index: i, Input: c.Inputs()})
		}
	}

	ch := make(chan job, workers)
	wg := new(sync.WaitGroup)
	wg.Add(workers)

	bar := pb.StartNew(len(jobs))
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range ch {
				// 每個 job 只寫自己的位置
				results[j.pos].Err = Verify(j.c)
				bar.Increment()
			}
		}()
	}

	var ctxErr error
	sent := 0
send:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break send
		case ch <- j:
			sent++
		}
	}
	close(ch)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	rep := &Report{Used: used}
	for _, res := range results[:sent] {
		if res.Err != nil {
			res.Msg = res.Err.Error()
			rep.Failed++
		} else {
			rep.Passed++
		}
		rep.Results = append(rep.Results, res)
	}
	if ctxErr != nil {
		return rep, errs.Wrap(ctxErr, "verify canceled")
	}
	return rep, nil
}
