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

// Package stats 對引擎輸出做快速的統計冒煙檢查。
//
// 這不是品質認證（那是 TestU01 / PractRand 的工作），只用來抓「接錯常數」之類
// 會讓分佈明顯失真的錯誤，並把結果排成報表。
package stats

import (
	"fmt"
	"io"
	"math"

	"github.com/zintix-labs/goldenrng/errs"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxSamples 為單次檢查的樣本上限。
const MaxSamples = 10_000_000

// Source 為任何可產生 [0,1) 浮點數的序列。
type Source interface {
	Float64() float64
}

// UniformityReport 為卡方均勻性檢定結果。
type UniformityReport struct {
	Name   string    `json:"Name" yaml:"Name"`
	N      int       `json:"N" yaml:"N"`
	Bins   int       `json:"Bins" yaml:"Bins"`
	ChiSq  float64   `json:"ChiSq" yaml:"ChiSq"`
	DoF    float64   `json:"DoF" yaml:"DoF"`
	PValue float64   `json:"PValue" yaml:"PValue"`
	Mean   float64   `json:"Mean" yaml:"Mean"`
	Std    float64   `json:"Std" yaml:"Std"`
	Counts []float64 `json:"Counts" yaml:"Counts"`
}

// ChiSquareUniform 抽 n 個樣本放進 bins 個等寬桶，計算卡方統計量與 p-value。
//
// 均勻分佈在 [0,1) 的理論平均為 1/2、標準差為 1/sqrt(12)。
func ChiSquareUniform(name string, src Source, bins, n int) (*UniformityReport, error) {
	if src == nil {
		return nil, errs.NewWarn("uniformity: nil source")
	}
	if bins < 2 {
		return nil, errs.Warnf("uniformity: bins must be >= 2, got %d", bins)
	}
	if n < bins*5 {
		// 每桶期望次數至少 5，卡方近似才站得住
		return nil, errs.Warnf("uniformity: need at least %d samples for %d bins, got %d", bins*5, bins, n)
	}
	if n > MaxSamples {
		return nil, errs.Warnf("uniformity: too many samples %d (max %d)", n, MaxSamples)
	}

	counts := make([]float64, bins)
	samples := make([]float64, n)
	for i := range samples {
		f := src.Float64()
		if f < 0 || f >= 1 || math.IsNaN(f) {
			return nil, errs.Fatalf("uniformity: source produced %v outside [0,1)", f)
		}
		samples[i] = f
		counts[int(f*float64(bins))]++
	}

	expected := float64(n) / float64(bins)
	exp := make([]float64, bins)
	for i := range exp {
		exp[i] = expected
	}
	chi := stat.ChiSquare(counts, exp)
	dof := float64(bins - 1)
	mean, std := stat.MeanStdDev(samples, nil)

	return &UniformityReport{
		Name:   name,
		N:      n,
		Bins:   bins,
		ChiSq:  chi,
		DoF:    dof,
		PValue: distuv.ChiSquared{K: dof}.Survival(chi),
		Mean:   mean,
		Std:    std,
		Counts: counts,
	}, nil
}

// Pass 以顯著水準 alpha 判斷是否拒絕均勻假設（雙尾：p 太小或太接近 1 都可疑）。
func (r *UniformityReport) Pass(alpha float64) bool {
	return r.PValue >= alpha/2 && r.PValue <= 1-alpha/2
}

func (r *UniformityReport) fmtBasic() ([]string, map[string]string) {
	p := Printer()
	m := map[string]string{
		"Source":  r.Name,
		"Samples": p.Sprintf("%d", r.N),
		"Bins":    p.Sprintf("%d", r.Bins),
		"ChiSq":   p.Sprintf("%.3f", r.ChiSq),
		"DoF":     p.Sprintf("%.0f", r.DoF),
		"p-value": p.Sprintf("%.4f", r.PValue),
		"Mean":    p.Sprintf("%.5f (0.50000)", r.Mean),
		"Std":     p.Sprintf("%.5f (%.5f)", r.Std, 1/math.Sqrt(12)),
	}
	keys := []string{"Source", "Samples", "Bins", "ChiSq", "DoF", "p-value", "Mean", "Std"}
	return keys, m
}

// String 以表格呈現。
func (r *UniformityReport) String() string {
	keys, m := r.fmtBasic()
	return FmtTable("Uniformity", keys, m)
}

// StdOut 輸出表格到 w。
func (r *UniformityReport) StdOut(w io.Writer) {
	fmt.Fprint(w, r.String())
}
