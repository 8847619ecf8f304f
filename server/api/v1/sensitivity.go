package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zintix-labs/seqsense"
	"github.com/zintix-labs/seqsense/dto"
	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/server/httperr"
	"github.com/zintix-labs/seqsense/server/svrcfg"
)

type SensitivityHandler struct {
	Lab           *seqsense.Lab
	maxSampleSize int
}

func NewSensitivityHandler(sCfg *svrcfg.SvrCfg) (*SensitivityHandler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("lab is required")
	}
	return &SensitivityHandler{Lab: sCfg.Lab, maxSampleSize: sCfg.MaxSampleSize}, nil
}

// Sensitivity 同時支援 GET / POST；解碼與 seed contract 交給 dto 層。
func (sh *SensitivityHandler) Sensitivity(w http.ResponseWriter, q *http.Request) {
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := dto.DecodeSensitivityRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	rs, seed, hasSeed, err := req.Parse()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 業務檢驗：樣本數上限屬於服務層的資源管理，不屬於引擎合約
	if rs.SampleSize > sh.maxSampleSize {
		httperr.Errs(w, errs.NewWarn(
			fmt.Sprintf("sample_size must be at most %d", sh.maxSampleSize)))
		return
	}

	var sen *seqsense.Sensitivity
	if hasSeed {
		sen, err = sh.Lab.NewSensitivityWithSeed(rs, seed)
	} else {
		sen, err = sh.Lab.NewSensitivity(rs)
	}
	if err != nil {
		// 這裡的錯誤來自引擎 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "build estimator err: "+rs.Name))
		return
	}

	report, used, err := sen.Run(false)
	if err != nil {
		// 這裡的錯誤來自估計過程 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "estimate err"))
		return
	}

	resp, err := dto.NewSensitivityResultDTO(report, used, req.Detail)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
