// internal/common/sort.go
package common

import (
	"sort"

	"reseg/internal/reseg"
)

// LessResult defines a stable order for results (for --sort).
func LessResult(a, b reseg.Result) bool {
	return a.ReadID < b.ReadID
}

func SortResults(rs []reseg.Result) {
	sort.SliceStable(rs, func(i, j int) bool { return LessResult(rs[i], rs[j]) })
}
