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

package seqsense

import (
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/seqsense/errs"
	"github.com/zintix-labs/seqsense/sdk/core"
	"github.com/zintix-labs/seqsense/sdk/sampler"
)

// sumJob 描述一個待執行的 chunk：樣本索引區間 [lo, hi)。
type sumJob struct {
	idx int // chunk 索引，決定 PRNG 子流
	lo  int
	hi  int
}

// sampleCumulativeSums 以 Monte-Carlo 產生品質分數的累積和矩陣。
//
// 回傳 sums，sums[m][k] 為第 k 條抽樣路徑前 m 次抽樣的品質和；
// 共 maxSummands+1 列、sampleSize 行，列 0 恆為 0（零次抽樣的和）。
//
// 平行策略：
//   - 樣本軸切成大小 chunkSize 的 chunks，由 workers 個 goroutine 消化。
//   - 每個 chunk 用 chunkSeed(baseSeed, idx) 導出的獨立 PRNG 子流，
//     寫入的行區間互不重疊，不需要鎖。
//   - 結果只依賴 (baseSeed, chunkSize)，與 workers 數量無關。
//
// 任一 chunk 失敗（worker panic）時 fail-fast：設下 abort 旗標讓其餘
// worker 放掉還沒開始的 chunks，join 後回傳第一個錯誤，絕不吞掉。
func sampleCumulativeSums(wheel *sampler.RouletteWheel, cf core.PRNGFactory, baseSeed int64,
	maxSummands, sampleSize, workers, chunkSize int, bar Progress) ([][]float64, error) {

	if wheel == nil {
		return nil, errs.NewFatal("cumulative sums: wheel required")
	}
	if maxSummands < 0 || sampleSize < 1 || workers < 1 || chunkSize < 1 {
		return nil, errs.NewWarn("cumulative sums: invalid param")
	}

	sums := make([][]float64, maxSummands+1)
	for m := range sums {
		sums[m] = make([]float64, sampleSize)
	}
	if maxSummands == 0 {
		return sums, nil
	}

	chunks := (sampleSize + chunkSize - 1) / chunkSize
	jobs := make(chan sumJob, chunks)
	for idx := 0; idx < chunks; idx++ {
		lo := idx * chunkSize
		jobs <- sumJob{idx: idx, lo: lo, hi: min(lo+chunkSize, sampleSize)}
	}
	close(jobs)

	bar.Start(sampleSize)

	var (
		abort    atomic.Bool
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		abort.Store(true)
	}

	wg := new(sync.WaitGroup)
	wg.Add(min(workers, chunks))
	for w := 0; w < min(workers, chunks); w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if abort.Load() {
					continue // 丟掉剩餘 chunks，盡快收工
				}
				if err := sumChunk(sums, wheel, cf, baseSeed, maxSummands, j); err != nil {
					fail(err)
					continue
				}
				bar.Add(j.hi - j.lo)
			}
		}()
	}
	wg.Wait()
	bar.Finish()

	if firstErr != nil {
		return nil, firstErr
	}
	return sums, nil
}

// sumChunk 以該 chunk 專屬的 PRNG 子流填入 sums 的行區間 [lo, hi)。
//
// worker panic 轉成 Fatal error 上拋，不讓單一 goroutine 的 panic
// 弄死整個行程。
func sumChunk(sums [][]float64, wheel *sampler.RouletteWheel, cf core.PRNGFactory,
	baseSeed int64, maxSummands int, j sumJob) (err error) {

	defer func() {
		if r := recover(); r != nil {
			err = errs.Fatalf("cumulative sum chunk %d panic: %v", j.idx, r)
		}
	}()

	c := core.New(cf.New(chunkSeed(baseSeed, j.idx)))
	for k := j.lo; k < j.hi; k++ {
		cur := 0.0
		for m := 1; m <= maxSummands; m++ {
			cur += float64(wheel.Draw(c))
			sums[m][k] = cur
		}
	}
	return nil
}
