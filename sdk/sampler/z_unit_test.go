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

package sampler

import (
	"math"
	"testing"

	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/sdk/core"
)

// -----------------------------------------------------------------------------
// Helper Functions
// -----------------------------------------------------------------------------

// assertPanic 驗證函數是否如預期觸發 panic
func assertPanic(t *testing.T, f func(), msg string) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for %s, but got none", msg)
		}
	}()
	f()
}

// checkDistribution 驗證抽樣結果的分佈是否符合預期權重
func checkDistribution(t *testing.T, name string, weights []float64, samples []int, tolerance float64) {
	t.Helper()
	totalW := 0.0
	for _, w := range weights {
		totalW += w
	}
	if totalW == 0 {
		return
	}

	counts := make(map[int]int)
	for _, idx := range samples {
		counts[idx]++
	}

	totalSamples := len(samples)
	for i, w := range weights {
		if w == 0 {
			if counts[i] > 0 {
				t.Errorf("[%s] expected 0 samples for index %d (weight 0), got %d", name, i, counts[i])
			}
			continue
		}
		expectedProb := w / totalW
		actualProb := float64(counts[i]) / float64(totalSamples)
		diff := math.Abs(expectedProb - actualProb)

		if diff > tolerance {
			t.Errorf("[%s] index %d: expected prob %.3f, got %.3f (diff %.3f > tol %.3f)",
				name, i, expectedProb, actualProb, diff, tolerance)
		}
	}
}

// -----------------------------------------------------------------------------
// Tests for RouletteWheel
// -----------------------------------------------------------------------------

// TestRouletteWheel_Distribution 驗證 stochastic acceptance 的抽樣分佈
// 檢查項目: 大量抽樣結果的經驗頻率應收斂到 weight[i]/Σweight
func TestRouletteWheel_Distribution(t *testing.T) {
	c := core.New(core.Default().New(51))
	weights := []float64{0.1, 0.2, 0.7}
	rw, err := NewRouletteWheel(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trials := 100000
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		samples[i] = rw.Draw(c)
	}
	checkDistribution(t, "RouletteWheel", weights, samples, 0.01)
}

// TestRouletteWheel_UnnormalizedWeights 驗證權重不需事先正規化
// 檢查項目: 同比例放大的權重應產生相同的分佈
func TestRouletteWheel_UnnormalizedWeights(t *testing.T) {
	c := core.New(core.Default().New(7))
	weights := []float64{10, 30, 60}
	rw, err := NewRouletteWheel(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trials := 100000
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		samples[i] = rw.Draw(c)
	}
	checkDistribution(t, "RouletteWheel unnormalized", weights, samples, 0.01)
}

// TestRouletteWheel_Degenerate 驗證單點分布
// 檢查項目: 只有一個正權重時，每次 Draw 都必須回傳該索引
func TestRouletteWheel_Degenerate(t *testing.T) {
	c := core.New(core.Default().New(11))
	weights := make([]float64, 31)
	weights[30] = 1.0
	rw, err := NewRouletteWheel(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10000; i++ {
		if got := rw.Draw(c); got != 30 {
			t.Fatalf("degenerate wheel drew %d, want 30", got)
		}
	}
}

// TestRouletteWheel_EmptyDistribution 驗證無正質量分布的錯誤
// 檢查項目: 全零與空陣列都應回傳 Warn 級錯誤
func TestRouletteWheel_EmptyDistribution(t *testing.T) {
	if _, err := NewRouletteWheel([]float64{0, 0, 0}); err == nil {
		t.Fatal("expected error for all-zero weights")
	} else if e, ok := errs.AsErr(err); !ok || e.ErrLv != errs.Warn {
		t.Fatalf("expected Warn level error, got %v", err)
	}

	if _, err := NewRouletteWheel([]float64{}); err == nil {
		t.Fatal("expected error for empty weights")
	}
}

// TestRouletteWheel_NegativePanic 驗證負權重是否觸發 panic
// 檢查項目: 輸入負權重應導致 panic
func TestRouletteWheel_NegativePanic(t *testing.T) {
	assertPanic(t, func() {
		NewRouletteWheel([]float64{1, -0.5})
	}, "Negative Weight")
}

// TestRouletteWheel_SamplingCapFallback 驗證連續拒絕上限的退回行為
// 檢查項目: 接受機率全為 0 的（手工構造的）wheel 必須在 samplingMax
// 次拒絕後回傳 0，而不是無窮迴圈
func TestRouletteWheel_SamplingCapFallback(t *testing.T) {
	c := core.New(core.Default().New(17))
	// 正常建構無法產生全零 probs（max 權重的接受機率必為 1），
	// 這裡直接構造內部狀態模擬極端偏斜下的長拒絕串
	rw := &RouletteWheel{probs: []float64{0, 0, 0, 0}, size: 4}
	if got := rw.Draw(c); got != 0 {
		t.Fatalf("exhausted wheel drew %d, want fallback 0", got)
	}
}

// TestRouletteWheel_Deterministic 驗證固定 seed 的可重現性
// 檢查項目: 相同 seed 的兩個 Core 抽出的序列必須一致
func TestRouletteWheel_Deterministic(t *testing.T) {
	weights := []float64{1, 2, 3, 4}
	rw, err := NewRouletteWheel(weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := core.New(core.Default().New(42))
	b := core.New(core.Default().New(42))
	for i := 0; i < 1000; i++ {
		if rw.Draw(a) != rw.Draw(b) {
			t.Fatalf("same-seed draws diverged at %d", i)
		}
	}
}
