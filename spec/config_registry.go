package spec

import (
	"bytes"
	"encoding/json"

	"github.com/zintix-labs/seqsense/errs"
	"gopkg.in/yaml.v3"
)

// GetRunSettingByYAML
// 會讀取 YAML 設定、補預設值並執行基本檢查後回傳。
func GetRunSettingByYAML(data []byte) (*RunSetting, error) {
	rs := &RunSetting{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(rs); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}

	// 設定檔初始化
	if err := rs.Init(); err != nil {
		return nil, errs.Wrap(err, "run setting initialized err")
	}

	return rs, nil
}

// GetRunSettingByJSON
// 會讀取 Json 設定、補預設值並執行基本檢查後回傳
func GetRunSettingByJSON(data []byte) (*RunSetting, error) {
	rs := &RunSetting{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields() // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(rs); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}

	// 設定檔初始化
	if err := rs.Init(); err != nil {
		return nil, errs.Wrap(err, "run setting initialized err")
	}

	return rs, nil
}
