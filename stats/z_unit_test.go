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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// -----------------------------------------------------------------------------
// Helper Functions
// -----------------------------------------------------------------------------

// assertClose 驗證兩浮點數是否在容差內相等
func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("[%s] got %v, want %v (tol %v)", name, got, want, tol)
	}
}

// -----------------------------------------------------------------------------
// Tests for HetAltDepthDistribution
// -----------------------------------------------------------------------------

// TestHetAltDepth_RowSums 驗證三角表每列為合法 pmf
// 檢查項目: 每列元素和必須為 1
func TestHetAltDepth_RowSums(t *testing.T) {
	table := HetAltDepthDistribution(200)
	for n, row := range table {
		if len(row) != n+1 {
			t.Fatalf("row %d has length %d, want %d", n, len(row), n+1)
		}
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		assertClose(t, "row sum", sum, 1.0, 1e-9)
	}
}

// TestHetAltDepth_Symmetry 驗證 p=0.5 二項分布的對稱性
// 檢查項目: table[n][m] == table[n][n-m]
func TestHetAltDepth_Symmetry(t *testing.T) {
	table := HetAltDepthDistribution(100)
	for n, row := range table {
		for m := 0; m <= n/2; m++ {
			if diff := math.Abs(row[m] - row[n-m]); diff > 1e-12 {
				t.Fatalf("table[%d][%d]=%v != table[%d][%d]=%v", n, m, row[m], n, n-m, row[n-m])
			}
		}
	}
}

// TestHetAltDepth_AgainstBinomial 以 distuv.Binomial 為 oracle 抽查表值
// 檢查項目: 遞迴建表與直接計算 pmf 必須一致
func TestHetAltDepth_AgainstBinomial(t *testing.T) {
	table := HetAltDepthDistribution(60)
	for _, n := range []int{1, 2, 7, 30, 59} {
		b := distuv.Binomial{N: float64(n), P: 0.5}
		for m := 0; m <= n; m++ {
			assertClose(t, "binomial pmf", table[n][m], b.Prob(float64(m)), 1e-9)
		}
	}
}

// TestHetAltDepth_Empty 驗證非正深度的邊界行為
func TestHetAltDepth_Empty(t *testing.T) {
	if got := HetAltDepthDistribution(0); got != nil {
		t.Fatalf("expected nil table for depthN=0, got %v", got)
	}
	if got := HetAltDepthDistribution(-3); got != nil {
		t.Fatalf("expected nil table for depthN<0, got %v", got)
	}
}

// -----------------------------------------------------------------------------
// Tests for ProportionsAboveThresholds
// -----------------------------------------------------------------------------

// TestSurvival_KnownCase 驗證已知小案例的生存比例
func TestSurvival_KnownCase(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3, 4},
		{10, 10, 10, 10},
	}
	thresholds := []float64{0, 2, 3.5, 100}

	out := ProportionsAboveThresholds(rows, thresholds)

	want0 := []float64{1.0, 0.75, 0.25, 0}
	want1 := []float64{1.0, 1.0, 1.0, 0}
	for i := range thresholds {
		assertClose(t, "row 0", out[0][i], want0[i], 1e-12)
		assertClose(t, "row 1", out[1][i], want1[i], 1e-12)
	}
}

// TestSurvival_NonIncreasing 驗證生存函數的單調性
// 檢查項目: 門檻遞增時比例不得上升
func TestSurvival_NonIncreasing(t *testing.T) {
	rows := [][]float64{{5, 1, 9, 2, 7, 3, 8, 4, 6, 0}}
	thresholds := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	out := ProportionsAboveThresholds(rows, thresholds)
	for i := 1; i < len(out[0]); i++ {
		if out[0][i] > out[0][i-1] {
			t.Fatalf("survival increased at threshold %d: %v > %v", i, out[0][i], out[0][i-1])
		}
	}
}

// TestSurvival_EmptyRow 驗證空樣本列的行為
// 檢查項目: 空列的所有比例皆為 0
func TestSurvival_EmptyRow(t *testing.T) {
	out := ProportionsAboveThresholds([][]float64{{}}, []float64{1, 2, 3})
	for i, p := range out[0] {
		if p != 0 {
			t.Fatalf("empty row proportion[%d] = %v, want 0", i, p)
		}
	}
}

// -----------------------------------------------------------------------------
// Tests for NormalizeHistogram
// -----------------------------------------------------------------------------

// TestNormalizeHistogram 驗證稀疏直方圖轉稠密 pmf
// 檢查項目: 索引對位、缺 bin 補零、總和為 1
func TestNormalizeHistogram(t *testing.T) {
	pmf, err := NormalizeHistogram(map[int]float64{0: 1, 2: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pmf) != 3 {
		t.Fatalf("pmf length = %d, want 3", len(pmf))
	}
	assertClose(t, "bin 0", pmf[0], 0.25, 1e-12)
	assertClose(t, "bin 1", pmf[1], 0, 1e-12)
	assertClose(t, "bin 2", pmf[2], 0.75, 1e-12)
}

// TestNormalizeHistogram_Errors 驗證非法輸入的錯誤
func TestNormalizeHistogram_Errors(t *testing.T) {
	if _, err := NormalizeHistogram(nil); err == nil {
		t.Fatal("expected error for nil histogram")
	}
	if _, err := NormalizeHistogram(map[int]float64{3: 0}); err == nil {
		t.Fatal("expected error for zero-total histogram")
	}
	if _, err := NormalizeHistogram(map[int]float64{-1: 5}); err == nil {
		t.Fatal("expected error for negative bin")
	}
	if _, err := NormalizeHistogram(map[int]float64{1: -5}); err == nil {
		t.Fatal("expected error for negative count")
	}
}

// -----------------------------------------------------------------------------
// Tests for EstimateProportion
// -----------------------------------------------------------------------------

// TestEstimateProportion 驗證 Clopper–Pearson 區間的基本性質
// 檢查項目: 區間涵蓋點估計、邊界情況 k=0 / k=n
func TestEstimateProportion(t *testing.T) {
	ps := EstimateProportion(50, 100)
	assertClose(t, "hat", ps.Hat, 0.5, 1e-12)
	if ps.CI.Lo > ps.Hat || ps.CI.Hi < ps.Hat {
		t.Fatalf("CI [%v,%v] does not cover hat %v", ps.CI.Lo, ps.CI.Hi, ps.Hat)
	}

	zero := EstimateProportion(0, 100)
	if zero.CI.Lo != 0 {
		t.Fatalf("k=0 CI.Lo = %v, want 0", zero.CI.Lo)
	}
	full := EstimateProportion(100, 100)
	if full.CI.Hi != 1 {
		t.Fatalf("k=n CI.Hi = %v, want 1", full.CI.Hi)
	}
}

// -----------------------------------------------------------------------------
// Tests for SensitivityReport
// -----------------------------------------------------------------------------

// TestSensitivityReport_Done 驗證報告的衍生統計量與輸出
func TestSensitivityReport_Done(t *testing.T) {
	r := &SensitivityReport{
		Summary: &SummaryReport{
			Name:             "unit",
			SampleSize:       10000,
			LogOddsThreshold: 3.0,
			DepthCap:         1000,
			Sensitivity:      0.9,
			Seed:             42,
		},
		Depth: &DepthReport{
			Mass:         []float64{0.5, 0.25, 0.25},
			Contribution: []float64{0, 0.2, 0.25},
		},
	}
	r.Done()

	assertClose(t, "mean depth", r.Summary.MeanDepth, 0.75, 1e-12)
	ci := r.Summary.SensitivityCI
	if ci.Lo >= 0.9 || ci.Hi <= 0.9 {
		t.Fatalf("CI [%v,%v] does not cover sensitivity 0.9", ci.Lo, ci.Hi)
	}

	var buf bytes.Buffer
	if err := r.WriteWith(&buf, &JsonSensitivityReportRender{}); err != nil {
		t.Fatalf("json render failed: %v", err)
	}
	var decoded SensitivityReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("rendered json does not decode: %v", err)
	}
	if decoded.Summary.Name != "unit" {
		t.Fatalf("roundtrip name = %q, want %q", decoded.Summary.Name, "unit")
	}

	buf.Reset()
	if err := r.WriteWith(&buf, &YAMLSensitivityReportRender{}); err != nil {
		t.Fatalf("yaml render failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("yaml render produced no output")
	}
}
