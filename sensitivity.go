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

package seqsense

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/sdk/core"
	"github.com/zintix-labs/seqsense/sdk/sampler"
	"github.com/zintix-labs/seqsense/spec"
	"github.com/zintix-labs/seqsense/stats"
)

// Sensitivity 單一定序情境的異型合子 SNP 偵測靈敏度估計器。
//
// 模型：位點深度 n 服從輸入的深度 pmf；雜合位點上 alt read 數
// m | n ~ Binomial(n, 1/2)；m 條 alt read 的品質和超過
// 10·(n·log10(2) + logOddsThreshold) 時視為可偵測。
// 品質和的分布以 Monte-Carlo 抽樣估計，其餘分量為解析計算。
type Sensitivity struct {
	Name     string           // 情境名稱
	rs       *spec.RunSetting // 執行參數
	cf       core.PRNGFactory // 亂數核心工廠
	initSeed int64            // 初始下的種子
	depth    []float64        // 深度 pmf（稠密，索引 = 深度）
	quality  []float64        // 品質 pmf（稠密，索引 = phred 品質分數）
}

func newSensitivity(rs *spec.RunSetting, cf core.PRNGFactory) (*Sensitivity, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, err
	}
	return newSensitivityWithSeed(rs, cf, seed.Int64())
}

func newSensitivityWithSeed(rs *spec.RunSetting, cf core.PRNGFactory, seed int64) (*Sensitivity, error) {
	// 不管設定從哪條路徑來（設定檔或 API request 組出來的 RunSetting），
	// 預設值與基本檢查都在這裡收口；Init 等冪，設定檔路徑重複呼叫無害。
	if err := rs.Init(); err != nil {
		return nil, errs.Wrap(err, "run setting initialized err")
	}
	depth, err := stats.NormalizeHistogram(rs.DepthHistogram)
	if err != nil {
		return nil, errs.Wrap(err, "depth histogram")
	}
	quality, err := stats.NormalizeHistogram(rs.QualityHistogram)
	if err != nil {
		return nil, errs.Wrap(err, "quality histogram")
	}
	return &Sensitivity{
		Name:     rs.Name,
		rs:       rs,
		cf:       cf,
		initSeed: seed,
		depth:    depth,
		quality:  quality,
	}, nil
}

// Run 執行估計並回傳報告與用時。
//
// showpb 控制終端機進度條；要注入自訂進度觀測器請用 RunWith。
func (sv *Sensitivity) Run(showpb bool) (*stats.SensitivityReport, time.Duration, error) {
	return sv.RunWith(NewBarProgress(showpb))
}

// RunWith 執行估計，進度回報交給呼叫端注入的觀測器。
//
// 相同的 Sensitivity 重複執行會得到完全相同的結果：所有亂數子流都
// 由 initSeed 純函數導出，與 workers 數量和排程順序無關。
//
// 流程：
//  1. 深度軸截斷到 MaxDepth（超出上限的深度質量直接捨棄）。
//  2. 品質 pmf 建 RouletteWheel（無正質量時回傳 Warn）。
//  3. Monte-Carlo 產生累積品質和矩陣（平行、分 chunk）。
//  4. 每個深度 n 的偵測門檻 10·(n·log10(2) + logOddsThreshold)。
//  5. 生存比例 exceed[m][n] = P(m 次抽樣的品質和 ≥ 門檻 n)。
//  6. alt read 條件分布 Binomial(n, 1/2) 三角表。
//  7. 三重縮減 Σn depth[n]·Σm alt[n][m]·exceed[m][n]。
func (sv *Sensitivity) RunWith(bar Progress) (*stats.SensitivityReport, time.Duration, error) {
	if bar == nil {
		bar = NopProgress{}
	}
	start := time.Now()

	depthN := min(len(sv.depth), sv.rs.MaxDepth+1)

	wheel, err := sampler.NewRouletteWheel(sv.quality)
	if err != nil {
		return nil, 0, errs.Wrap(err, "quality distribution")
	}

	sums, err := sampleCumulativeSums(wheel, sv.cf, sv.initSeed,
		depthN-1, sv.rs.SampleSize, sv.rs.Workers, sv.rs.ChunkSize, bar)
	if err != nil {
		return nil, 0, err
	}

	thresholds := make([]float64, depthN)
	log10Two := math.Log10(2)
	for n := range thresholds {
		thresholds[n] = 10 * (float64(n)*log10Two + sv.rs.LogOddsThreshold)
	}

	exceed := stats.ProportionsAboveThresholds(sums, thresholds)
	alt := stats.HetAltDepthDistribution(depthN)

	mass := make([]float64, depthN)
	copy(mass, sv.depth[:depthN])

	contribution := make([]float64, depthN)
	sensitivity := 0.0
	for n := 0; n < depthN; n++ {
		if mass[n] == 0 {
			continue
		}
		cond := 0.0
		for m := 0; m <= n; m++ {
			cond += alt[n][m] * exceed[m][n]
		}
		contribution[n] = mass[n] * cond
		sensitivity += contribution[n]
	}
	used := time.Since(start)

	report := &stats.SensitivityReport{
		Summary: &stats.SummaryReport{
			Name:             sv.Name,
			SampleSize:       sv.rs.SampleSize,
			LogOddsThreshold: sv.rs.LogOddsThreshold,
			DepthCap:         sv.rs.MaxDepth,
			Sensitivity:      sensitivity,
			Seed:             sv.initSeed,
		},
		Depth: &stats.DepthReport{
			Mass:         mass,
			Contribution: contribution,
		},
	}
	report.Done()

	return report, used, nil
}
