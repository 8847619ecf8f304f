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
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zintix-labs/seqsense/stats"
)

func TestDecodeSensitivityRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/sensitivity?name=hiseq&sample_size=5000&log_odds_threshold=3.0&workers=4&"+
			"quality_dist=0,0,10,90&depth_dist=1,9&has_seed=true&seed=42&detail=true", nil)
	req, err := DecodeSensitivityRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "hiseq" || req.SampleSize != 5000 || req.Workers != 4 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.LogOddsThreshold != 3.0 {
		t.Fatalf("unexpected log_odds_threshold: %v", req.LogOddsThreshold)
	}
	if len(req.QualityDist) != 4 || req.QualityDist[3] != 90 {
		t.Fatalf("unexpected quality_dist: %v", req.QualityDist)
	}
	if !req.HasSeed || req.Seed != 42 || !req.Detail {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestDecodeSensitivityRequestPOST(t *testing.T) {
	data := []byte(`{"name":"novaseq","log_odds_threshold":6.2,` +
		`"quality_histogram":{"30":90,"20":10},"depth_histogram":{"0":1,"30":9}}`)
	r := httptest.NewRequest(http.MethodPost, "/sensitivity", bytes.NewReader(data))
	req, err := DecodeSensitivityRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "novaseq" || req.QualityHistogram[30] != 90 || req.DepthHistogram[30] != 9 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestDecodeSensitivityRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"name":"x","log_odds_threshold":1,"unknown":true}`)
	r := httptest.NewRequest(http.MethodPost, "/sensitivity", bytes.NewReader(data))
	if _, err := DecodeSensitivityRequest(r); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestSensitivityRequestParse(t *testing.T) {
	req := &SensitivityRequest{
		Name:             "parse",
		LogOddsThreshold: 3.0,
		QualityDist:      []float64{0, 0, 10, 90},
		DepthHistogram:   map[int]float64{1: 1},
		HasSeed:          true,
		Seed:             7,
	}
	rs, seed, hasSeed, err := req.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasSeed || seed != 7 {
		t.Fatalf("seed = %d hasSeed = %v", seed, hasSeed)
	}
	// 稠密陣列轉直方圖：索引即 bin，零計數不展開
	if rs.QualityHistogram[2] != 10 || rs.QualityHistogram[3] != 90 {
		t.Fatalf("unexpected quality histogram: %v", rs.QualityHistogram)
	}
	if _, ok := rs.QualityHistogram[0]; ok {
		t.Fatalf("zero-count bin should be omitted: %v", rs.QualityHistogram)
	}
}

func TestSensitivityRequestParseContracts(t *testing.T) {
	// seed 給了值但 has_seed=false
	bad := &SensitivityRequest{Name: "x", Seed: 5,
		QualityDist: []float64{1}, DepthDist: []float64{1}}
	if _, _, _, err := bad.Parse(); err == nil {
		t.Fatal("expected error for seed without has_seed")
	}

	// 同軸雙重來源
	dup := &SensitivityRequest{Name: "x",
		QualityHistogram: map[int]float64{30: 1}, QualityDist: []float64{1},
		DepthDist: []float64{1}}
	if _, _, _, err := dup.Parse(); err == nil {
		t.Fatal("expected error for duplicate quality source")
	}

	// 缺分布
	missing := &SensitivityRequest{Name: "x", QualityDist: []float64{1}}
	if _, _, _, err := missing.Parse(); err == nil {
		t.Fatal("expected error for missing depth distribution")
	}
}

func TestNewSensitivityResultDTO(t *testing.T) {
	report := &stats.SensitivityReport{
		Summary: &stats.SummaryReport{
			Name:             "dto",
			SampleSize:       1000,
			LogOddsThreshold: 3.0,
			DepthCap:         1000,
			Sensitivity:      0.8,
			Seed:             11,
		},
		Depth: &stats.DepthReport{
			Mass:         []float64{0, 1},
			Contribution: []float64{0, 0.8},
		},
	}

	dto, err := NewSensitivityResultDTO(report, 1500*time.Millisecond, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Sensitivity != 0.8 || dto.Seed != 11 || dto.UsedMs != 1500 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.CILo >= 0.8 || dto.CIHi <= 0.8 {
		t.Fatalf("CI [%v,%v] does not cover 0.8", dto.CILo, dto.CIHi)
	}
	if dto.Detail == nil || dto.Detail.Contribution[1] != 0.8 {
		t.Fatalf("unexpected detail: %+v", dto.Detail)
	}

	slim, err := NewSensitivityResultDTO(report, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slim.Detail != nil {
		t.Fatal("detail should be omitted when not requested")
	}

	if _, err := NewSensitivityResultDTO(nil, 0, false); err == nil {
		t.Fatal("expected error for nil report")
	}
}
