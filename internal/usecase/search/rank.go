package search

import (
	"slices"

	"github.com/kailas-cloud/saucenao/internal/domain/result"
)

// DefaultPriorityTolerance is the similarity window below the top match in
// which index priority is honoured.
const DefaultPriorityTolerance = 10.0

// RankOptions controls filtering and priority ordering of raw matches.
type RankOptions struct {
	// MinSimilarity drops matches at or below it. Zero disables the filter.
	MinSimilarity float64
	// Priority lists preferred index ids, most preferred first.
	Priority []int
	// Tolerance is the window below the top similarity in which priority
	// applies. Zero disables the window.
	Tolerance float64
}

// Rank filters matches by similarity and orders them by index priority.
// Priority matches within the tolerance window come first, grouped by the
// order of opts.Priority; everything else follows. Each group is sorted by
// similarity, descending and stable. The input slice is not modified.
func Rank(raws []result.Raw, opts RankOptions) []result.Raw {
	kept := make([]result.Raw, 0, len(raws))
	for _, r := range raws {
		if opts.MinSimilarity != 0 && similarity(r) <= opts.MinSimilarity {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return kept
	}

	tolerable := func(result.Raw) bool { return true }
	if opts.Tolerance != 0 {
		top := similarity(kept[0])
		for _, r := range kept[1:] {
			top = max(top, similarity(r))
		}
		floor := top - opts.Tolerance
		tolerable = func(r result.Raw) bool { return similarity(r) >= floor }
	}

	if len(opts.Priority) == 0 {
		sortBySimilarity(kept)
		return kept
	}

	buckets := make(map[int][]result.Raw, len(opts.Priority))
	order := make([]int, 0, len(opts.Priority))
	for _, id := range opts.Priority {
		if _, seen := buckets[id]; !seen {
			buckets[id] = nil
			order = append(order, id)
		}
	}

	var extra []result.Raw
	for _, r := range kept {
		id := int(r.Header.IndexID)
		if _, ok := buckets[id]; ok && tolerable(r) {
			buckets[id] = append(buckets[id], r)
			continue
		}
		extra = append(extra, r)
	}

	ranked := make([]result.Raw, 0, len(kept))
	for _, id := range order {
		b := buckets[id]
		sortBySimilarity(b)
		ranked = append(ranked, b...)
	}
	sortBySimilarity(extra)
	return append(ranked, extra...)
}

func similarity(r result.Raw) float64 {
	return float64(r.Header.Similarity)
}

func sortBySimilarity(raws []result.Raw) {
	slices.SortStableFunc(raws, func(a, b result.Raw) int {
		switch sa, sb := similarity(a), similarity(b); {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
}
