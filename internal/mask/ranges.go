// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mask

import (
	"strconv"
	"strings"
)

// Resolve looks up the mask for a verse label, falling back to range
// aggregation for merged labels. It returns the mask and whether one
// was found.
func Resolve(label string, masks map[string]VerseMask) (VerseMask, bool) {
	if m, ok := masks[label]; ok {
		return m, true
	}
	if strings.Contains(label, "-") {
		return RangeMask(label, masks)
	}
	return nil, false
}

// RangeMask aggregates the masks of every individual verse in a merged
// label like "19-21", concatenated in increasing numeric order. Labels
// in the range with no mask contribute nothing. A label whose bounds do
// not parse as integers degrades to "no mask available" — the same as a
// missing label, never an error.
func RangeMask(label string, masks map[string]VerseMask) (VerseMask, bool) {
	first, rest, found := strings.Cut(label, "-")
	if !found {
		return nil, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return nil, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || end < start {
		return nil, false
	}

	var combined VerseMask
	for v := start; v <= end; v++ {
		if m, ok := masks[strconv.Itoa(v)]; ok {
			combined = append(combined, m...)
		}
	}
	if len(combined) == 0 {
		return nil, false
	}
	return combined, true
}
