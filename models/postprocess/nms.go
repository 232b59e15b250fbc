package postprocess

import (
	"sort"

	"github.com/nvr-ai/go-detect/images"
)

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	// ScoreThreshold excludes boxes with score <= threshold from
	// consideration entirely. Independent of the decoder's confidence
	// threshold.
	ScoreThreshold float32
	// IoUThreshold is the overlap above which a lower-scoring box is
	// suppressed.
	IoUThreshold float32
	// ClassAware restricts suppression to boxes of the same class. The
	// detection pipeline runs with it off: suppression is joint across
	// classes, so a box of one class can suppress an overlapping box of
	// another.
	ClassAware bool
}

// Suppress runs greedy Non-Maximum Suppression and returns the indices of
// the kept boxes, highest score first. The input is not mutated.
//
// Candidates are visited in descending score order; equal scores are
// visited in ascending input order, so results are reproducible across
// runs. Each visited, still-unconsumed candidate is kept, and every other
// unconsumed candidate whose IoU with it exceeds the threshold is
// discarded. Zero-area boxes have IoU 0 against everything and so are
// never suppressed by overlap.
//
// Arguments:
//   - boxes: Rescaled candidates.
//   - config: Score gate, overlap threshold and class-awareness.
//
// Returns:
//   - []int: Indices into boxes of the surviving candidates.
func Suppress(boxes []ScoredBox, config *NMSConfig) []int {
	order := make([]int, 0, len(boxes))
	for i := range boxes {
		if boxes[i].Score > config.ScoreThreshold {
			order = append(order, i)
		}
	}

	// Stable sort on descending score keeps ascending input order as the
	// tie-break.
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].Score > boxes[order[b]].Score
	})

	kept := make([]int, 0, len(order))
	suppressed := make([]bool, len(order))

	for i, idx := range order {
		if suppressed[i] {
			continue
		}
		kept = append(kept, idx)

		anchor := boxes[idx]
		for j := i + 1; j < len(order); j++ {
			if suppressed[j] {
				continue
			}
			other := boxes[order[j]]
			if config.ClassAware && anchor.Class != other.Class {
				continue
			}
			if images.CalculateIoU(anchor.Box, other.Box) > config.IoUThreshold {
				suppressed[j] = true
			}
		}
	}

	return kept
}
