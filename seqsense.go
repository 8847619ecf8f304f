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

// Package seqsense 提供定序靈敏度引擎的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// 你可以把 Lab 視為一個「可被後端/批次分析使用的 runtime」，它負責把下列地基組裝在一起，
// 並提供建立 Sensitivity 估計器的入口：
//  1. RunSetting：執行設定（情境名稱、樣本數、log-odds 門檻、平行參數、輸入分布）。
//  2. PRNGFactory：亂數核心工廠（PRNG factory），保證可重現（reproducible）與可審計（auditable）。
//
// 設計重點：
//   - Lab 本身不綁定任何「檔案路徑」概念：設定一律以 bytes（YAML/JSON）或建好的 RunSetting 注入。
//   - 由同一個 Lab 建出來的估計器共用同一個 PRNG 工廠，RNG 行為具有一致性。
//   - Sensitivity 是對外提供 Run 的最小單位；相同 seed 的估計器重複執行結果逐位一致。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 Lab 建立 Sensitivity，對外提供靈敏度估計 API。
//   - 批次分析：由設定檔批次建立估計器，跑完輸出報表。
package seqsense

import (
	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/sdk/core"
	"github.com/zintix-labs/seqsense/spec"
)

// Lab 是「組裝器（assembler）」與「運行入口（runtime entry）」。
//
// 它持有亂數核心工廠，確保由這個 Lab 建出來的估計器在 RNG 行為上
// 具有一致性。設定（RunSetting）則逐次注入，Lab 不快取設定內容。
type Lab struct {
	cf core.PRNGFactory
}

// New 建立一個 Lab instance。
//
// 參數要求（是合約的一部分）：
//   - cf 不能為 nil：沒有 RNG 工廠就無法建立可重現/可審計的核心。
func New(cf core.PRNGFactory) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	return &Lab{cf: cf}, nil
}

// NewSensitivity 依 RunSetting 建立估計器（seed 由 crypto/rand 產生）。
//
// 注意：seed 會被記錄在估計器內（initSeed）並寫進報表，用於追溯/重現。
func (l *Lab) NewSensitivity(rs *spec.RunSetting) (*Sensitivity, error) {
	if rs == nil {
		return nil, errs.NewFatal("run setting required")
	}
	return newSensitivity(rs, l.cf)
}

// NewSensitivityWithSeed 與 NewSensitivity 相同，但由呼叫端指定初始 seed。
//
// 使用情境：
//   - 可重現的測試/迴歸：同一份設定 + 同一個 seed，結果逐位一致。
func (l *Lab) NewSensitivityWithSeed(rs *spec.RunSetting, seed int64) (*Sensitivity, error) {
	if rs == nil {
		return nil, errs.NewFatal("run setting required")
	}
	return newSensitivityWithSeed(rs, l.cf, seed)
}

func (l *Lab) NewSensitivityByYAML(raw []byte) (*Sensitivity, error) {
	rs, err := spec.GetRunSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	return newSensitivity(rs, l.cf)
}

func (l *Lab) NewSensitivityByJSON(raw []byte, seed int64) (*Sensitivity, error) {
	rs, err := spec.GetRunSettingByJSON(raw)
	if err != nil {
		return nil, err
	}
	return newSensitivityWithSeed(rs, l.cf, seed)
}
