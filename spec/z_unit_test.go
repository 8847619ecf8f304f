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

package spec

import "testing"

const validYAML = `
name: hiseq-2500
sample_size: 5000
log_odds_threshold: 3.0
quality_histogram: {30: 90, 20: 10}
depth_histogram: {0: 1, 30: 9}
`

// TestGetRunSettingByYAML 驗證 YAML 設定載入與預設值
func TestGetRunSettingByYAML(t *testing.T) {
	rs, err := GetRunSettingByYAML([]byte(validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Name != "hiseq-2500" {
		t.Fatalf("name = %q", rs.Name)
	}
	if rs.SampleSize != 5000 {
		t.Fatalf("sample_size = %d", rs.SampleSize)
	}
	if rs.Workers != DefaultWorkers {
		t.Fatalf("workers default = %d, want %d", rs.Workers, DefaultWorkers)
	}
	if rs.ChunkSize != DefaultChunkSize {
		t.Fatalf("chunk_size default = %d, want %d", rs.ChunkSize, DefaultChunkSize)
	}
	if rs.MaxDepth != DefaultMaxDepth {
		t.Fatalf("max_depth default = %d, want %d", rs.MaxDepth, DefaultMaxDepth)
	}
	if rs.QualityHistogram[30] != 90 {
		t.Fatalf("quality_histogram[30] = %v", rs.QualityHistogram[30])
	}
}

// TestGetRunSettingByYAML_Strict 驗證拼錯欄位會被拒絕
func TestGetRunSettingByYAML_Strict(t *testing.T) {
	bad := []byte("name: x\nsample_sizee: 100\n")
	if _, err := GetRunSettingByYAML(bad); err == nil {
		t.Fatal("expected error for unknown yaml field")
	}
}

// TestGetRunSettingByJSON 驗證 JSON 設定載入與嚴格檢查
func TestGetRunSettingByJSON(t *testing.T) {
	rs, err := GetRunSettingByJSON([]byte(`{"name":"novaseq","log_odds_threshold":6.2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.SampleSize != DefaultSampleSize {
		t.Fatalf("sample_size default = %d, want %d", rs.SampleSize, DefaultSampleSize)
	}

	if _, err := GetRunSettingByJSON([]byte(`{"name":"x","bogus":1}`)); err == nil {
		t.Fatal("expected error for unknown json field")
	}
}

// TestRunSetting_Valid 驗證非法設定值的檢查
func TestRunSetting_Valid(t *testing.T) {
	cases := []string{
		`{"name":""}`,
		`{"name":"x","sample_size":-1}`,
		`{"name":"x","workers":-2}`,
		`{"name":"x","chunk_size":-1}`,
		`{"name":"x","max_depth":-7}`,
	}
	for _, c := range cases {
		if _, err := GetRunSettingByJSON([]byte(c)); err == nil {
			t.Fatalf("expected error for %s", c)
		}
	}
}
