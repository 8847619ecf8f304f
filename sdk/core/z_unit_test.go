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

package core

import "testing"

// TestDeterministicSeed 驗證 New(seed) 的決定性合約
// 檢查項目: 相同 seed 必須產生相同的輸出序列
func TestDeterministicSeed(t *testing.T) {
	a := Default().New(51)
	b := Default().New(51)
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}
}

// TestDifferentSeedsDiverge 驗證不同 seed 產生不同序列
// 檢查項目: 兩個相鄰 seed 的前段輸出不應完全相同
func TestDifferentSeedsDiverge(t *testing.T) {
	a := Default().New(1)
	b := Default().New(2)
	same := true
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("adjacent seeds produced identical prefixes")
	}
}

// TestSnapshotRestore 驗證狀態快照與還原
// 檢查項目: Restore 後的序列必須與快照當下的後續序列一致
func TestSnapshotRestore(t *testing.T) {
	r := Default().New(99)
	for i := 0; i < 10; i++ {
		r.Uint64()
	}
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	want := make([]uint64, 20)
	for i := range want {
		want[i] = r.Uint64()
	}

	r2 := Default().New(0)
	if err := r2.Restore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	for i := range want {
		if got := r2.Uint64(); got != want[i] {
			t.Fatalf("restored stream diverged at step %d", i)
		}
	}
}

// TestBounds 驗證 bounded 取樣的邊界行為
// 檢查項目: IntN/UintN 的哨兵值與範圍
func TestBounds(t *testing.T) {
	c := New(Default().New(7))
	if got := c.IntN(0); got != -1 {
		t.Fatalf("IntN(0) = %d, want -1", got)
	}
	if got := c.IntN(-5); got != -1 {
		t.Fatalf("IntN(-5) = %d, want -1", got)
	}
	if got := c.UintN(0); got != 0 {
		t.Fatalf("UintN(0) = %d, want 0", got)
	}
	for i := 0; i < 10000; i++ {
		if v := c.IntN(10); v < 0 || v >= 10 {
			t.Fatalf("IntN(10) out of range: %d", v)
		}
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

// TestPick 驗證 Pick 的哨兵值與取值範圍
func TestPick(t *testing.T) {
	c := New(Default().New(3))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("Pick(nil) = %d, want -1", got)
	}
	src := []int{5, 6, 7}
	for i := 0; i < 100; i++ {
		v := c.Pick(src)
		if v < 5 || v > 7 {
			t.Fatalf("Pick out of range: %d", v)
		}
	}
}
