package v1

import (
	"crypto/rand"
	"encoding/json"
	"math"
	"math/big"
	"net/http"

	"github.com/zintix-labs/seqsense/dto"
	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/server/httperr"
)

// SetByJson 傳入 JSON設定格式（RunSetting 同構），直接建立估計器並執行。
func (sh *SensitivityHandler) SetByJson(w http.ResponseWriter, r *http.Request) {
	type SenRequestByJson struct {
		RunSetting json.RawMessage `json:"cfg"`
		Detail     bool            `json:"detail,omitempty"`
		Seed       *int64          `json:"seed,omitempty"`
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// 1. decode request
	req := new(SenRequestByJson)
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20) // 5MB
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httperr.Errs(w, errs.Wrap(err, "json decode failed"))
		return
	}

	// 2. seed 補齊
	if req.Seed == nil {
		rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			httperr.Errs(w, errs.NewWarn("seed generate failed"))
			return
		}
		v := rnd.Int64()
		req.Seed = &v
	}

	// 3. 建立估計器
	sen, err := sh.Lab.NewSensitivityByJSON(req.RunSetting, *req.Seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	report, used, err := sen.Run(false)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 4. 回傳Json
	resp, err := dto.NewSensitivityResultDTO(report, used, req.Detail)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
