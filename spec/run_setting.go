package spec

import (
	"math"

	"github.com/zintix-labs/seqsense/errs"
)

// 預設執行參數
const (
	DefaultSampleSize = 10000
	DefaultWorkers    = 8
	DefaultChunkSize  = 1000
	DefaultMaxDepth   = 1000
)

// RunSetting 包含啟動一次靈敏度估計所需的所有高階設定。
//
// QualityHistogram / DepthHistogram 為選填：由設定檔驅動的 lab 執行
// 會在這裡帶入分布，API 請求則自帶分布、不走設定檔。
type RunSetting struct {
	Name             string          `yaml:"name"               json:"name"`
	SampleSize       int             `yaml:"sample_size"        json:"sample_size"`
	LogOddsThreshold float64         `yaml:"log_odds_threshold" json:"log_odds_threshold"`
	Workers          int             `yaml:"workers"            json:"workers"`
	ChunkSize        int             `yaml:"chunk_size"         json:"chunk_size"`
	MaxDepth         int             `yaml:"max_depth"          json:"max_depth"`
	QualityHistogram map[int]float64 `yaml:"quality_histogram"  json:"quality_histogram"`
	DepthHistogram   map[int]float64 `yaml:"depth_histogram"    json:"depth_histogram"`
}

// Init 補預設值後執行基本檢查。
//
// 所有建立估計器的路徑（設定檔、API request）都必須經過這裡，
// 否則零值欄位會被當成字面意義的 0 使用。對已補值的設定重複
// 呼叫是等冪的。
func (rs *RunSetting) Init() error {
	if rs.SampleSize == 0 {
		rs.SampleSize = DefaultSampleSize
	}
	if rs.Workers == 0 {
		rs.Workers = DefaultWorkers
	}
	if rs.ChunkSize == 0 {
		rs.ChunkSize = DefaultChunkSize
	}
	if rs.MaxDepth == 0 {
		rs.MaxDepth = DefaultMaxDepth
	}
	return rs.valid()
}

// valid 執行最基本的設定檔檢查，如需更多驗證可在此擴充。
func (rs *RunSetting) valid() error {

	if rs.Name == "" {
		return errs.NewFatal("empty name")
	}

	if rs.SampleSize < 1 {
		return errs.Fatalf("name: %s err:invalid sample_size %d", rs.Name, rs.SampleSize)
	}

	if math.IsNaN(rs.LogOddsThreshold) || math.IsInf(rs.LogOddsThreshold, 0) {
		return errs.Fatalf("name: %s err:log_odds_threshold is not finite", rs.Name)
	}

	if rs.Workers < 1 {
		return errs.Fatalf("name: %s err:invalid workers %d", rs.Name, rs.Workers)
	}

	if rs.ChunkSize < 1 {
		return errs.Fatalf("name: %s err:invalid chunk_size %d", rs.Name, rs.ChunkSize)
	}

	if rs.MaxDepth < 1 {
		return errs.Fatalf("name: %s err:invalid max_depth %d", rs.Name, rs.MaxDepth)
	}

	return nil
}
