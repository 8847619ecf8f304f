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
	"log/slog"
	"net/http"

	"github.com/zintix-labs/seqsense/server/api/index"
	v1 "github.com/zintix-labs/seqsense/server/api/v1"
	"github.com/zintix-labs/seqsense/server/netsvr"
	"github.com/zintix-labs/seqsense/server/netsvr/middleware"
	"github.com/zintix-labs/seqsense/server/svrcfg"
)

// RegisterRoutes 註冊
//
// handler 組裝失敗時回傳錯誤；呼叫端不得在錯誤下繼續啟動，
// 否則 /v1 routes 會整組缺席。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)  // 1. 註冊 middleware
	registerIndex(svr)                 // 2. 註冊主頁 / 健康檢查
	return registerV1API(svr, sCfg)    // 3. 註冊 v1 api
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

// 註冊主頁 / 健康檢查
func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", index.IndexHandlerFn)
	svr.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	s, err := v1.NewSensitivityHandler(sCfg)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/sensitivity", s.Sensitivity)

		vOne.Post("/sensitivity", s.Sensitivity)
		vOne.Post("/senbycfg", s.SetByJson)
		vOne.Post("/normalize", v1.Normalize)
	})
	return nil
}
