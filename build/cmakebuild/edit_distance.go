// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmakebuild

// editDistance returns the Levenshtein distance between a and b.
// If limit > 0, it stops once every prefix of a is farther than
// limit from b, and returns limit+1.
func editDistance(a, b string, limit int) int {
	// prev and cur are consecutive rows of the distance table,
	// indexed by prefix length of b.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 0; i < len(a); i++ {
		cur[0] = i + 1
		rowMin := cur[0]
		for j := 0; j < len(b); j++ {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}
			cur[j+1] = min(prev[j]+cost, prev[j+1]+1, cur[j]+1)
			rowMin = min(rowMin, cur[j+1])
		}
		if limit > 0 && rowMin > limit {
			return limit + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
