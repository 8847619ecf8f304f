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

package v1

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestNormalize 驗證直方圖正規化端點
// 檢查項目: 稀疏直方圖轉稠密 pmf、零質量直方圖回 400
func TestNormalize(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/v1/normalize",
		strings.NewReader(`{"histogram":{"0":1,"2":3}}`))
	w := httptest.NewRecorder()
	Normalize(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		PMF []float64 `json:"pmf"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	want := []float64{0.25, 0, 0.75}
	if len(resp.PMF) != len(want) {
		t.Fatalf("pmf length = %d, want %d", len(resp.PMF), len(want))
	}
	for i := range want {
		if math.Abs(resp.PMF[i]-want[i]) > 1e-12 {
			t.Fatalf("pmf[%d] = %v, want %v", i, resp.PMF[i], want[i])
		}
	}

	r = httptest.NewRequest(http.MethodPost, "/v1/normalize",
		strings.NewReader(`{"histogram":{"3":0}}`))
	w = httptest.NewRecorder()
	Normalize(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for zero-mass histogram", w.Code)
	}
}

// TestNormalize_BodyTooLarge 驗證請求 body 的大小上限
func TestNormalize_BodyTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte(" "), 5<<20+16)
	r := httptest.NewRequest(http.MethodPost, "/v1/normalize", bytes.NewReader(big))
	w := httptest.NewRecorder()
	Normalize(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for oversized body", w.Code)
	}
}
