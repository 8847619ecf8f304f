package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/seqsense/server/httperr"
	"github.com/zintix-labs/seqsense/stats"
)

// Normalize 把稀疏直方圖正規化成稠密 PMF，供呼叫端預檢輸入分布。
func Normalize(w http.ResponseWriter, r *http.Request) {
	type NormalizeRequest struct {
		Histogram map[int]float64 `json:"histogram"`
	}
	type NormalizeResponse struct {
		PMF []float64 `json:"pmf"`
	}
	// Post方法限定
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// 嘗試解析
	req := new(NormalizeRequest)
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20) // 5MB，與 senbycfg 同上限
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pmf, err := stats.NormalizeHistogram(req.Histogram)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&NormalizeResponse{PMF: pmf})
}
