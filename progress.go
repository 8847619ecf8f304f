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
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress 回報長時間估計的進度。
//
// 由呼叫端注入，估計器本身不持有任何全域輸出管道；不關心進度就
// 傳 NopProgress。Add 會被多個 worker goroutines 併發呼叫，
// 實作必須是 goroutine-safe。
type Progress interface {
	Start(total int)
	Add(n int)
	Finish()
}

// NopProgress 丟棄所有進度事件。
type NopProgress struct{}

func (NopProgress) Start(int) {}
func (NopProgress) Add(int)   {}
func (NopProgress) Finish()   {}

// BarProgress 以終端機進度條呈現進度；show=false 時輸出導向 io.Discard
// （進度條仍然計數，只是不畫）。
type BarProgress struct {
	bar  *pb.ProgressBar
	show bool
}

func NewBarProgress(show bool) *BarProgress {
	return &BarProgress{show: show}
}

func (b *BarProgress) Start(total int) {
	b.bar = pb.StartNew(total)
	if !b.show {
		b.bar.SetWriter(io.Discard)
	}
}

func (b *BarProgress) Add(n int) {
	if b.bar != nil {
		b.bar.Add(n)
	}
}

func (b *BarProgress) Finish() {
	if b.bar != nil {
		b.bar.Finish()
	}
}
