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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/spec"
)

// SensitivityRequest 一次靈敏度估計的請求。
//
// 分布有兩種帶法，每個軸只能擇一：
//   - 稀疏直方圖（*_histogram）：{"30": 90, "20": 10}，key 為 bin 值。
//   - 稠密計數陣列（*_dist）：索引即 bin 值，元素為計數。
//
// Seed Contract（避免 seed=0 的雙重語意）：
//   - 若 has_seed 為 false（或未提供），則 seed 必須省略；否則視為 request 格式錯誤。
//   - 若 has_seed 為 true，則視為指定 seed；seed 若省略則視為 0。
type SensitivityRequest struct {
	Name             string          `json:"name"`                        // 情境名稱
	SampleSize       int             `json:"sample_size,omitempty"`       // Monte-Carlo 樣本數(0=預設)
	LogOddsThreshold float64         `json:"log_odds_threshold"`          // 偵測 log-odds 門檻
	Workers          int             `json:"workers,omitempty"`           // 併發worker數(0=預設)
	ChunkSize        int             `json:"chunk_size,omitempty"`        // 樣本chunk大小(0=預設)
	MaxDepth         int             `json:"max_depth,omitempty"`         // 深度截斷上限(0=預設)
	QualityHistogram map[int]float64 `json:"quality_histogram,omitempty"` // 品質直方圖(稀疏)
	DepthHistogram   map[int]float64 `json:"depth_histogram,omitempty"`   // 深度直方圖(稀疏)
	QualityDist      []float64       `json:"quality_dist,omitempty"`      // 品質計數(稠密)
	DepthDist        []float64       `json:"depth_dist,omitempty"`        // 深度計數(稠密)
	Detail           bool            `json:"detail,omitempty"`            // 是否回傳逐深度明細
	Seed             int64           `json:"seed,omitempty"`              // 可選：指定 seed（允許為 0）
	HasSeed          bool            `json:"has_seed,omitempty"`          // 可選：是否有「指定 seed」
}

// DecodeSensitivityRequest 會把 HTTP 請求解碼成 SensitivityRequest。
//
// 支援：
//   - GET：從 query string 讀取參數；分布只支援稠密形式，以逗號分隔
//     （例如 quality_dist=0,0,10,90）。直方圖形式請用 POST。
//   - POST：從 JSON body 反序列化。
//
// 注意：
//   - 這裡只負責「解碼（decode）」與基本型別轉換；數值合法性
//     （樣本數、分布質量）由 Parse / RunSetting 層決定。
//   - 為避免過大 body 影響服務，POST 會對 body 做大小限制（預設 1MiB）。
//   - POST 會開啟 DisallowUnknownFields()，對未知欄位採用嚴格拒絕，以避免靜默丟資料。
func DecodeSensitivityRequest(r *http.Request) (*SensitivityRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(SensitivityRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Name = q.Get("name")

		if s := q.Get("sample_size"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid sample_size: %v", err))
			}
			req.SampleSize = v
		}

		if s := q.Get("log_odds_threshold"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid log_odds_threshold: %v", err))
			}
			req.LogOddsThreshold = v
		}

		if s := q.Get("workers"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid workers: %v", err))
			}
			req.Workers = v
		}

		if s := q.Get("chunk_size"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid chunk_size: %v", err))
			}
			req.ChunkSize = v
		}

		if s := q.Get("max_depth"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid max_depth: %v", err))
			}
			req.MaxDepth = v
		}

		if s := q.Get("quality_dist"); s != "" {
			v, err := parseDenseDist(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid quality_dist: %v", err))
			}
			req.QualityDist = v
		}

		if s := q.Get("depth_dist"); s != "" {
			v, err := parseDenseDist(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid depth_dist: %v", err))
			}
			req.DepthDist = v
		}

		if s := q.Get("detail"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errs.NewWarn("invalid detail value " + err.Error())
			}
			req.Detail = v
		}

		if s := q.Get("seed"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid seed: %v", err))
			}
			req.Seed = v
		}

		if s := q.Get("has_seed"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errs.NewWarn("invalid has_seed value " + err.Error())
			}
			req.HasSeed = v
		}

		return req, nil

	case http.MethodPost:
		// 防止 body 過大（預設 1MiB）
		const maxBody = 1 << 20
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return req, nil

	default:
		return nil, fmt.Errorf("method not allowed")
	}
}

// parseDenseDist 解析逗號分隔的稠密計數陣列。
func parseDenseDist(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Parse 將請求轉成引擎層的 RunSetting。
//
// 分布規則（兩個軸各自適用）：
//   - 直方圖與稠密陣列不可同時提供（雙重來源視為格式錯誤）。
//   - 兩者都缺視為格式錯誤：沒有分布無從估計。
//   - 稠密陣列會轉成以索引為 bin 的直方圖。
//
// 回傳的 seed 只在 hasSeed=true 時有意義；否則由上層產生隨機 seed。
func (sr *SensitivityRequest) Parse() (rs *spec.RunSetting, seed int64, hasSeed bool, err error) {
	if !sr.HasSeed && sr.Seed != 0 {
		return nil, 0, false, errs.NewWarn("has_seed is false but seed is not zero")
	}

	quality, err := pickHistogram("quality", sr.QualityHistogram, sr.QualityDist)
	if err != nil {
		return nil, 0, false, err
	}
	depth, err := pickHistogram("depth", sr.DepthHistogram, sr.DepthDist)
	if err != nil {
		return nil, 0, false, err
	}

	rs = &spec.RunSetting{
		Name:             sr.Name,
		SampleSize:       sr.SampleSize,
		LogOddsThreshold: sr.LogOddsThreshold,
		Workers:          sr.Workers,
		ChunkSize:        sr.ChunkSize,
		MaxDepth:         sr.MaxDepth,
		QualityHistogram: quality,
		DepthHistogram:   depth,
	}
	return rs, sr.Seed, sr.HasSeed, nil
}

func pickHistogram(axis string, hist map[int]float64, dense []float64) (map[int]float64, error) {
	if hist != nil && dense != nil {
		return nil, errs.NewWarn(axis + " distribution: histogram and dense form are mutually exclusive")
	}
	if hist != nil {
		return hist, nil
	}
	if dense == nil {
		return nil, errs.NewWarn(axis + " distribution required")
	}
	out := make(map[int]float64, len(dense))
	for bin, count := range dense {
		if count != 0 {
			out[bin] = count
		}
	}
	if len(out) == 0 {
		return nil, errs.NewWarn(axis + " distribution: no positive mass")
	}
	return out, nil
}
