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

package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/zintix-labs/goldenrng/server/api"
	v1 "github.com/zintix-labs/goldenrng/server/api/v1"
	"github.com/zintix-labs/goldenrng/server/logger"
	"github.com/zintix-labs/goldenrng/server/netsvr"
	"github.com/zintix-labs/goldenrng/server/svrcfg"
	"github.com/zintix-labs/goldenrng/stats"
)

var testdata = filepath.Join("..", "..", "golden", "testdata")

func newServer(t *testing.T, tweak func(*svrcfg.SvrCfg)) http.Handler {
	t.Helper()
	sc := &svrcfg.SvrCfg{Log: logger.New(logger.ModeSilence, nil), Workers: 2}
	if tweak != nil {
		tweak(sc)
	}
	if err := sc.Valid(); err != nil {
		t.Fatalf("config: %v", err)
	}
	svr := netsvr.NewChiServerDefault()
	if err := api.RegisterRoutes(svr, sc); err != nil {
		t.Fatalf("register: %v", err)
	}
	return svr
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func equal(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIndex(t *testing.T) {
	h := newServer(t, nil)
	rec := do(t, h, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	idx := decode[api.IndexResponse](t, rec)
	if len(idx.LCG) != 3 || len(idx.Philox) != 4 || len(idx.Suites) != 6 {
		t.Fatalf("unexpected index %+v", idx)
	}
}

func TestLCGRoute(t *testing.T) {
	h := newServer(t, nil)
	cases := []struct {
		target string
		want   []uint64
	}{
		{"/v1/lcg/minstd_rand?seed=1&n=2", []uint64{48271, 182605794}},
		{"/v1/lcg/minstd_rand?n=2", []uint64{48271, 182605794}},
		{"/v1/lcg/minstd_rand?seed=0xdeadbeef&n=3", []uint64{2068214664, 422780561, 503362590}},
		{"/v1/lcg/rand48?seed=16053920545362542317&jump=3735928559&n=3", []uint64{273584089654045, 165221941035364, 55734521048991}},
	}
	for _, tc := range cases {
		rec := do(t, h, http.MethodGet, tc.target, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: code = %d body=%s", tc.target, rec.Code, rec.Body.String())
		}
		resp := decode[v1.LCGResponse](t, rec)
		if !equal(resp.Values, tc.want) {
			t.Fatalf("%s: values = %v, want %v", tc.target, resp.Values, tc.want)
		}
		if resp.State != tc.want[len(tc.want)-1] {
			t.Fatalf("%s: state = %d", tc.target, resp.State)
		}
	}

	rec := do(t, h, http.MethodGet, "/v1/lcg/minstd_rand", nil)
	if resp := decode[v1.LCGResponse](t, rec); len(resp.Values) != 16 {
		t.Fatalf("default n should be 16, got %d", len(resp.Values))
	}

	for _, bad := range []string{
		"/v1/lcg/mt19937",
		"/v1/lcg/rand48?seed=-1",
		"/v1/lcg/rand48?n=0",
		"/v1/lcg/rand48?n=1000000",
		"/v1/lcg/rand48?jump=abc",
	} {
		if rec := do(t, h, http.MethodGet, bad, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d, want 400", bad, rec.Code)
		}
	}
}

func TestLCGSnapResume(t *testing.T) {
	h := newServer(t, nil)
	full := decode[v1.LCGResponse](t, do(t, h, http.MethodGet, "/v1/lcg/rand48?seed=5&n=6", nil))
	head := decode[v1.LCGResponse](t, do(t, h, http.MethodGet, "/v1/lcg/rand48?seed=5&n=2", nil))
	if head.Snap == "" {
		t.Fatalf("missing snap")
	}

	// 接續後再跳過 1 個值
	rec := do(t, h, http.MethodGet, "/v1/lcg/rand48?n=3&jump=1&snap="+head.Snap, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	tail := decode[v1.LCGResponse](t, rec)
	if !equal(tail.Values, full.Values[3:]) {
		t.Fatalf("resumed = %v, want %v", tail.Values, full.Values[3:])
	}
	if tail.Snap != full.Snap {
		t.Fatalf("final snap differs")
	}

	// minstd 的快照不能拿來接 rand48
	other := decode[v1.LCGResponse](t, do(t, h, http.MethodGet, "/v1/lcg/minstd_rand?n=1", nil))
	for _, bad := range []string{"/v1/lcg/rand48?snap=" + other.Snap, "/v1/lcg/rand48?snap=%21%21"} {
		if rec := do(t, h, http.MethodGet, bad, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d, want 400", bad, rec.Code)
		}
	}
}

func TestPhiloxRoute(t *testing.T) {
	h := newServer(t, nil)

	// golden philox4x32 第二個 case：jump 290822620 個字 = 72705655 個 counter
	rec := do(t, h, http.MethodGet,
		"/v1/philox/philox4x32?key=3735928559,3199060734&ctr=305419896,2427178479,3737844653,3740879962&jump=72705655&n=4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decode[v1.PhiloxResponse](t, rec)
	if want := []uint64{1596458325, 1833542472, 4220078178, 3358699343}; !equal(resp.Values, want) {
		t.Fatalf("values = %v, want %v", resp.Values, want)
	}
	if resp.Rounds != 10 || len(resp.Key) != 2 || len(resp.Ctr) != 4 {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = do(t, h, http.MethodGet,
		"/v1/philox/philox2x64?key=16045690981402826360&ctr=16053920545362542317,9833571963442023509&n=3", nil)
	resp = decode[v1.PhiloxResponse](t, rec)
	if want := []uint64{5968810543255516439, 18055877199482925861, 8382117963240415812}; !equal(resp.Values, want) {
		t.Fatalf("values = %v, want %v", resp.Values, want)
	}
	if want := []uint64{16053920545362542319, 9833571963442023509}; !equal(resp.Next, want) {
		t.Fatalf("next = %v, want %v", resp.Next, want)
	}

	for _, bad := range []string{
		"/v1/philox/philox8x32",
		"/v1/philox/philox2x32?key=1,2",
		"/v1/philox/philox2x32?ctr=1,2,3",
		"/v1/philox/philox4x32?ctr=4294967296",
		"/v1/philox/philox4x64?rounds=0",
		"/v1/philox/philox4x64?key=x",
	} {
		if rec := do(t, h, http.MethodGet, bad, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d, want 400", bad, rec.Code)
		}
	}
}

func TestGoldenSuiteRoute(t *testing.T) {
	h := newServer(t, nil)
	want, err := os.ReadFile(filepath.Join(testdata, "philox4x32.dat"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	rec := do(t, h, http.MethodGet, "/v1/golden/philox4x32", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != string(want) {
		t.Fatalf("code=%d body differs from testdata:\n%s", rec.Code, rec.Body.String())
	}

	// gzip 壓縮後內容不變
	req := httptest.NewRequest(http.MethodGet, "/v1/golden/philox4x32", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	zrec := httptest.NewRecorder()
	h.ServeHTTP(zrec, req)
	if zrec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response")
	}
	zr, err := gzip.NewReader(zrec.Body)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	got, _ := io.ReadAll(zr)
	if string(got) != string(want) {
		t.Fatalf("gzip body differs")
	}

	if rec := do(t, h, http.MethodGet, "/v1/golden/mt19937", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown suite code = %d", rec.Code)
	}
}

type verifyResp struct {
	Suite  string `json:"suite"`
	OK     bool   `json:"ok"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

func TestGoldenVerifyRoute(t *testing.T) {
	h := newServer(t, nil)
	data, err := os.ReadFile(filepath.Join(testdata, "minstd_rand.dat"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}

	rec := do(t, h, http.MethodPost, "/v1/golden/verify?suite=minstd_rand", strings.NewReader(string(data)))
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	if v := decode[verifyResp](t, rec); !v.OK || v.Passed != 3 || v.Failed != 0 {
		t.Fatalf("unexpected verify %+v", v)
	}

	bad := strings.Replace(string(data), "gen=2068214664,", "gen=2068214665,", 1)
	rec = do(t, h, http.MethodPost, "/v1/golden/verify?suite=minstd_rand", strings.NewReader(bad))
	if v := decode[verifyResp](t, rec); v.OK || v.Failed != 1 || v.Passed != 2 {
		t.Fatalf("mismatch not reported: %+v", v)
	}

	for _, tc := range []struct {
		target, body string
	}{
		{"/v1/golden/verify", string(data)},
		{"/v1/golden/verify?suite=minstd_rand", ""},
		{"/v1/golden/verify?suite=minstd_rand", "seed=abc;gen=1,"},
		{"/v1/golden/verify?suite=minstd_rand", "seed=1;gen=\n"},
		{"/v1/golden/verify?suite=minstd_rand", "seed=1;gen=48271,182605794,\n"},
		{"/v1/golden/verify?suite=philox4x32", "key=1,2;ctr=1,2,3,4;gen=1,\n"},
	} {
		if rec := do(t, h, http.MethodPost, tc.target, strings.NewReader(tc.body)); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %q: code = %d", tc.target, tc.body, rec.Code)
		}
	}

	small := newServer(t, func(sc *svrcfg.SvrCfg) { sc.MaxBody = 64 })
	rec = do(t, small, http.MethodPost, "/v1/golden/verify?suite=minstd_rand", strings.NewReader(string(data)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body code = %d", rec.Code)
	}
}

func TestStatsRoute(t *testing.T) {
	h := newServer(t, nil)
	for _, variant := range []string{"minstd_rand", "rand48", "philox2x32", "philox4x64", v1.CoreVariant} {
		rec := do(t, h, http.MethodGet, "/v1/stats/"+variant+"?seed=7&n=16000&bins=16", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: code = %d body=%s", variant, rec.Code, rec.Body.String())
		}
		r := decode[stats.UniformityReport](t, rec)
		if r.N != 16000 || r.Bins != 16 || len(r.Counts) != 16 || r.Name != variant {
			t.Fatalf("%s: unexpected report %+v", variant, r)
		}
	}

	rec := do(t, h, http.MethodGet, "/v1/stats/philox4x32?n=1000&bins=4&format=yaml", nil)
	if !strings.Contains(rec.Body.String(), "Counts: [") {
		t.Fatalf("yaml render: %s", rec.Body.String())
	}
	rec = do(t, h, http.MethodGet, "/v1/stats/philox4x32?n=1000&bins=4&format=table", nil)
	if !strings.Contains(rec.Body.String(), "Uniformity") {
		t.Fatalf("table render: %s", rec.Body.String())
	}

	for _, bad := range []string{
		"/v1/stats/mt19937",
		"/v1/stats/rand48?bins=1",
		"/v1/stats/rand48?bins=16&n=10",
		"/v1/stats/rand48?n=100000000",
		"/v1/stats/rand48?format=xml",
	} {
		if rec := do(t, h, http.MethodGet, bad, nil); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d, want 400", bad, rec.Code)
		}
	}
}
