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

package api

import (
	"testing"

	"github.com/zintix-labs/seqsense"
	"github.com/zintix-labs/seqsense/sdk/core"
	"github.com/zintix-labs/seqsense/server/netsvr"
	"github.com/zintix-labs/seqsense/server/svrcfg"
)

// TestRegisterRoutes 驗證路由註冊的錯誤合約
// 檢查項目: 缺 Lab 時 handler 組裝失敗必須上拋，不得留下缺 /v1 的
// 半套 server；依賴齊全時註冊成功
func TestRegisterRoutes(t *testing.T) {
	if err := RegisterRoutes(netsvr.NewChiServerDefault(), &svrcfg.SvrCfg{}); err == nil {
		t.Fatal("expected error when lab is missing")
	}

	lab, err := seqsense.New(core.Default())
	if err != nil {
		t.Fatalf("new lab failed: %v", err)
	}
	sCfg := &svrcfg.SvrCfg{Lab: lab, MaxSampleSize: 10000}
	if err := RegisterRoutes(netsvr.NewChiServerDefault(), sCfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
