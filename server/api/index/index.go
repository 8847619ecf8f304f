// Package index 提供服務主頁（landing page），列出可用的 endpoints。
package index

import (
	"net/http"
)

const indexBody = `seqsense - sequencing sensitivity estimation service

endpoints:
  GET  /healthz            liveness probe
  GET  /v1/sensitivity     estimate (dense dists via query string)
  POST /v1/sensitivity     estimate (JSON body, histogram or dense)
  POST /v1/senbycfg        estimate from a raw RunSetting JSON config
  POST /v1/normalize       normalize a sparse histogram into a dense PMF
`

// IndexHandlerFn 回傳純文字導覽頁。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(indexBody))
}
