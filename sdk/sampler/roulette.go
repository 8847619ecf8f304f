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

// Package sampler 提供 seqsense 所需的加權抽樣演算法與工具。
//
// 本檔案 (roulette.go) 實作 Stochastic Acceptance 加權抽樣演算法。
//
// 演算法原理 (see Physica A, Volume 391, Page 2193, 2012)：
//   - 均勻抽一個索引 n，以 weight[n]/maxWeight 的機率接受，否則重抽。
//   - 當 max/avg 權重比不大時，期望抽樣時間為 O(1)。
//
// 特性：
//   - 建表時間：O(N)，只需一次正規化掃描。
//   - 抽樣時間：期望 O(1)；最壞情況由 samplingMax 上限保護。
//   - 空間複雜度：O(N)。
//
// 適用場景：
//   - 權重為浮點數（品質分數 pmf），無法走整數 scaling 的 alias table。
//   - 需要與參考實作逐 draw 相容的場景（抽樣序列本身是合約的一部分）。
package sampler

import (
	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/sdk/core"
)

// samplingMax 限制連續拒絕次數，防止極端偏斜分布下的 'infinite' loop。
// 上限觸發時退回 index 0。這是沿用參考輸出的相容性行為：對高度偏斜
// 的分布會引入朝 index 0 的微小偏差，調整前必須先對照參考輸出驗證。
const samplingMax = 600

// RouletteWheel 以 stochastic acceptance 從離散權重分布抽取索引。
//
// 結構欄位說明：
//   - probs: 每個索引的接受機率 weight[i]/maxWeight，固定落在 [0,1]。
//   - size:  索引數量 K，Draw 回傳值落在 [0,K)。
//
// 建構完成後即為唯讀；多個 goroutine 可同時共用同一個 wheel，
// 但每個 goroutine 必須帶自己的 *core.Core（亂數狀態不可共用）。
type RouletteWheel struct {
	probs []float64
	size  int
}

// NewRouletteWheel 根據輸入的權重建立 RouletteWheel。
//
// 輸入 weights 說明：
//   - weights 為任意非負權重陣列，不需事先正規化。
//   - 權重可為零；但最大權重為零（或空陣列）回傳 EmptyDistribution 類
//     的 Warn error——沒有任何正質量就無從抽樣。
//   - 負權重視為程式錯誤，直接 panic（與本包其他 sampler 一致）。
func NewRouletteWheel[F Floaters](weights []F) (*RouletteWheel, error) {
	var wMax F
	for _, w := range weights {
		if w < 0 {
			panic("RouletteWheel: negative weight encountered")
		}
		if w > wMax {
			wMax = w
		}
	}
	if wMax == 0 {
		return nil, errs.NewWarn("empty distribution: no positive weight mass")
	}

	probs := make([]float64, len(weights))
	for i, w := range weights {
		probs[i] = float64(w) / float64(wMax)
	}
	return &RouletteWheel{
		probs: probs,
		size:  len(weights),
	}, nil
}

// Size 回傳索引數量 K。
func (rw *RouletteWheel) Size() int { return rw.size }

// Draw 從 wheel 中抽取一個索引，回傳值落在 [0, K)。
//
// 抽樣步驟說明：
//
// 1) 使用 c.IntN(size) 均勻選擇一個候選索引 n。
//
// 2) 使用 c.Float64() < probs[n] 判斷是否接受；拒絕則重抽。
//
// 3) 連續拒絕達 samplingMax 次時放棄並回傳 0（見常數說明）。
//
// 每次 trial 都會推進 c 的亂數狀態。
func (rw *RouletteWheel) Draw(c *core.Core) int {
	rejected := 0
	for {
		n := c.IntN(rw.size)
		if c.Float64() < rw.probs[n] {
			return n
		}
		rejected++
		if rejected >= samplingMax {
			return 0
		}
	}
}
