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

import "sort"

// ProportionsAboveThresholds 估計每列樣本的生存比例。
//
// 對每一列 rows[m]（同一深度下 sampleSize 個累積品質和的樣本），
// 回傳 out[m][t] = P(樣本 ≥ thresholds[t]) 的經驗估計。
//
// 做法：
//   - 先將該列排序（就地排序，輸入會被修改），
//   - thresholds 必須單調不減，如此比較指標只需單向前進，
//     整列的成本是 O(S log S + S + T) 而非 O(S·T)。
//
// 指標走到尾端後，其餘較高門檻的比例一律為 0。
func ProportionsAboveThresholds(rows [][]float64, thresholds []float64) [][]float64 {
	out := make([][]float64, len(rows))

	for m, row := range rows {
		out[m] = make([]float64, len(thresholds))
		if len(row) == 0 {
			continue
		}
		sort.Float64s(row)

		total := float64(len(row))
		p := 0
		for t, threshold := range thresholds {
			for p < len(row) && row[p] < threshold {
				p++
			}
			if p == len(row) {
				break
			}
			out[m][t] = float64(len(row)-p) / total
		}
	}
	return out
}
