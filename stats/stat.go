package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// SensitivityReport 靈敏度估計報告
type SensitivityReport struct {
	Summary *SummaryReport `json:"Summary"`
	Depth   *DepthReport   `json:"Depth,omitzero"`
	isDone  bool
}

type SummaryReport struct {
	Name             string  `json:"Name"`
	SampleSize       int     `json:"SampleSize"`
	LogOddsThreshold float64 `json:"LogOddsThreshold"`
	DepthCap         int     `json:"DepthCap"`
	MeanDepth        float64 `json:"MeanDepth"`
	Sensitivity      float64 `json:"Sensitivity"`
	SensitivityCI    CI      `json:"SensitivityCI"`
	Seed             int64   `json:"Seed"`
}

// DepthReport 逐深度貢獻統計
//
// Mass 為深度 pmf，Contribution 為該深度對總靈敏度的貢獻
// (mass × 該深度下偵測成功的條件機率)，兩者皆以深度為索引。
type DepthReport struct {
	Mass         []float64 `json:"Mass"`
	Contribution []float64 `json:"Contribution"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 補完衍生統計量並鎖定 isDone 標記。
//
// 估計過程只填入 Sensitivity / Mass / Contribution 等原始結果，
// 請使用 Done 一次性計算 MeanDepth 與信賴區間
func (s *SensitivityReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.MeanDepth = s.MeanDepth()
	s.Summary.SensitivityCI = s.Ci()
	s.isDone = true
}

// MeanDepth 回傳深度分布的期望值 Σ n·mass[n]
func (s *SensitivityReport) MeanDepth() float64 {
	if s.Depth == nil {
		return 0
	}
	mean := 0.0
	for n, mass := range s.Depth.Mass {
		mean += float64(n) * mass
	}
	return mean
}

// Ci 回傳(95% Sensitivity)信賴區間
//
// 把靈敏度視為 sampleSize 次試驗下的二項比例做 Clopper–Pearson。
// 抽樣誤差只來自 exceed 分量，故此區間為保守近似。
func (s *SensitivityReport) Ci() CI {
	n := s.Summary.SampleSize
	k := int(s.Summary.Sensitivity*float64(n) + 0.5)
	_, ci := proportionCICP(k, n, 0.95)
	return ci
}

func (s *SensitivityReport) WriteWith(w io.Writer, rep SensitivityReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

func (s *SensitivityReport) StdOut(ut time.Duration) {
	s.Done()
	formatDuration(ut, s.Summary.SampleSize)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.Name, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, draws int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(draws) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\ndps : %d draws/sec\n", sec, dps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		s = s % 60
		p.Printf("used: %dm %ds\ndps : %d draws/sec\n", m, s, dps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\ndps : %d draws/sec\n", h, m, s, dps)
}

// StdOut

func (s *SensitivityReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Name":               p.Sprintf("%s", s.Summary.Name),
		"Sample Size":        p.Sprintf("%d", s.Summary.SampleSize),
		"LogOdds Threshold":  p.Sprintf("%.2f", s.Summary.LogOddsThreshold),
		"Depth Cap":          p.Sprintf("%d", s.Summary.DepthCap),
		"Mean Depth":         p.Sprintf("%.2f", s.Summary.MeanDepth),
		"Sensitivity":        p.Sprintf("%.4f %%", 100.0*s.Summary.Sensitivity),
		"Sensitivity 95% CI": p.Sprintf("[%.4f%%,%.4f%%]", 100.0*s.Summary.SensitivityCI.Lo, 100.0*s.Summary.SensitivityCI.Hi),
		"Seed":               fmt.Sprintf("%d", s.Summary.Seed),
	}
	keys := []string{"Name", "Sample Size", "LogOdds Threshold", "Depth Cap", "Mean Depth", "Sensitivity", "Sensitivity 95% CI", "Seed"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
