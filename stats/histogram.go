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

import "github.com/zintix-labs/seqsense/errs"

// NormalizeHistogram 將稀疏計數直方圖轉為稠密 pmf 陣列。
//
// 回傳的切片以 bin 值為索引，長度為 maxBin+1，未出現的 bin 補 0，
// 每個元素為 count/total。
//
// nil 直方圖或總計數為 0 時回傳 Warn 級錯誤：呼叫端給了沒有任何
// 質量的輸入，無從正規化。
func NormalizeHistogram(hist map[int]float64) ([]float64, error) {
	if hist == nil {
		return nil, errs.NewWarn("normalize histogram: histogram is nil")
	}

	maxBin := 0
	total := 0.0
	for bin, count := range hist {
		if bin < 0 {
			return nil, errs.Warnf("normalize histogram: negative bin %d", bin)
		}
		if count < 0 {
			return nil, errs.Warnf("normalize histogram: negative count at bin %d", bin)
		}
		if bin > maxBin {
			maxBin = bin
		}
		total += count
	}
	if total == 0 {
		return nil, errs.NewWarn("normalize histogram: total count is zero")
	}

	pmf := make([]float64, maxBin+1)
	for bin, count := range hist {
		pmf[bin] = count / total
	}
	return pmf, nil
}
