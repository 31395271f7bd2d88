// SPDX-License-Identifier: MIT

// Package assemble: the offset index builder — the leaf every assembly path
// funnels through.
package assemble

// OffsetIndex turns an ordered sequence of per-entity block sizes into
// cumulative offsets: off[0] = 0 and off[i+1] = off[i] + sizes[i], so
// off[i] is where entity i's rows (or columns) begin in the assembled
// matrix and off[len(sizes)] is the total dimension.
//
// Pure; sizes are trusted non-negative (callers derive them from validated
// block shapes and never hand negative counts down).
// Complexity: Time O(m), Space O(m) for m = len(sizes).
func OffsetIndex(sizes []int) []int {
	off := make([]int, len(sizes)+1)
	for i, s := range sizes { // fixed order; off[0] stays 0
		off[i+1] = off[i] + s
	}

	return off
}
