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

package dto

import (
	"time"

	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/stats"
)

// SensitivityResult 對外輸出的靈敏度估計結果。
type SensitivityResult struct {
	Name             string       `json:"name"`               // 情境名稱
	SampleSize       int          `json:"sample_size"`        // Monte-Carlo 樣本數
	LogOddsThreshold float64      `json:"log_odds_threshold"` // 偵測 log-odds 門檻
	DepthCap         int          `json:"depth_cap"`          // 深度截斷上限
	MeanDepth        float64      `json:"mean_depth"`         // 深度期望值
	Sensitivity      float64      `json:"sensitivity"`        // 靈敏度點估計
	CILo             float64      `json:"ci_lo"`              // 95% CI 下界
	CIHi             float64      `json:"ci_hi"`              // 95% CI 上界
	Seed             int64        `json:"seed"`               // 本次估計的 seed(重現用)
	UsedMs           int64        `json:"used_ms"`            // 計算用時(毫秒)
	Detail           *DepthDetail `json:"detail,omitempty"`   // 逐深度明細(請求 detail=true 才回)
}

// DepthDetail 逐深度明細，索引即深度。
type DepthDetail struct {
	Mass         []float64 `json:"mass"`         // 深度 pmf
	Contribution []float64 `json:"contribution"` // 各深度對靈敏度的貢獻
}

// NewSensitivityResultDTO 由引擎報告組出對外 DTO。
func NewSensitivityResultDTO(report *stats.SensitivityReport, used time.Duration, detail bool) (SensitivityResult, error) {
	if report == nil || report.Summary == nil {
		return SensitivityResult{}, errs.NewWarn("sensitivity report is nil")
	}
	report.Done()
	sum := report.Summary

	dto := SensitivityResult{
		Name:             sum.Name,
		SampleSize:       sum.SampleSize,
		LogOddsThreshold: sum.LogOddsThreshold,
		DepthCap:         sum.DepthCap,
		MeanDepth:        sum.MeanDepth,
		Sensitivity:      sum.Sensitivity,
		CILo:             sum.SensitivityCI.Lo,
		CIHi:             sum.SensitivityCI.Hi,
		Seed:             sum.Seed,
		UsedMs:           used.Milliseconds(),
	}

	if detail && report.Depth != nil {
		dto.Detail = &DepthDetail{
			Mass:         append([]float64(nil), report.Depth.Mass...),
			Contribution: append([]float64(nil), report.Depth.Contribution...),
		}
	}

	return dto, nil
}
