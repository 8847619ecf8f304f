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

import "math"

// HetAltDepthDistribution 建立異型合子位點的 alt 讀數條件分布表。
//
// 回傳三角表 table，table[n][m] = P(alt reads = m | depth = n)，
// 即 Binomial(n, 0.5) 的 pmf：雜合位點每條 read 攜帶 alt 等位基因的
// 機率是 1/2。列 n 長度為 n+1（m 只能落在 0..n）。
//
// 遞迴關係（沿 Pascal 三角逐列推進，避免大 n 的階乘溢位）：
//
//	table[n][0] = 0.5^n
//	table[n][m] = table[n-1][m-1] · (n·0.5/m)
//	table[n][n] = table[n][0]      （對稱性）
//
// 整張表共 N(N+1)/2 個元素，一次配置在同一塊 backing array 上，
// 各列是它的切片，避免 N 次小配置。
func HetAltDepthDistribution(depthN int) [][]float64 {
	if depthN <= 0 {
		return nil
	}
	flat := make([]float64, depthN*(depthN+1)/2)
	table := make([][]float64, depthN)

	off := 0
	for n := 0; n < depthN; n++ {
		table[n] = flat[off : off+n+1 : off+n+1]
		off += n + 1

		table[n][0] = math.Pow(0.5, float64(n))
		for m := 1; m < n; m++ {
			table[n][m] = table[n-1][m-1] * (float64(n) * 0.5 / float64(m))
		}
		if n > 0 {
			table[n][n] = table[n][0]
		}
	}
	return table
}
