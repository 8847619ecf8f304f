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

const mask63 = uint64(1<<63) - 1

// chunkSeed 導出第 idx 個 chunk 的 PRNG 子流 seed。
//
// 必須是 (baseSeed, idx) 的純函數：chunk 由哪個 worker、以什麼順序
// 執行都不影響它的亂數流，因此相同 baseSeed 下不論 workers 設多少，
// 估計結果都可逐位重現。
//
// 先用黃金比例常數（乘奇數 ⇒ mod 2^63 可逆）把索引散開再與 base 混合，
// 避免相鄰 chunk 的 seed 落在彼此相關的區段。
func chunkSeed(baseSeed int64, idx int) int64 {
	x := (uint64(baseSeed) ^ (uint64(idx+1) * 0x9E3779B97F4A7C15)) & mask63
	return int64(mix63(x)) // 一定非負
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
