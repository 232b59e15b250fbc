package postprocess

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/classes"
)

// Assemble joins surviving candidates with their class names and produces
// the final ordered detection list.
//
// The output is sorted by descending confidence, ties broken by ascending
// class index, then by original anchor index. This ordering is the
// externally observable contract of the pipeline.
//
// Arguments:
//   - kept: Indices into boxes, as returned by Suppress.
//   - boxes: The rescaled candidate set.
//   - table: The class-name table.
//
// Returns:
//   - []Detection: The ordered detection list (possibly empty).
//   - error: ErrUnknownClassID when a class index has no table entry; no
//     partial output is returned.
func Assemble(kept []int, boxes []ScoredBox, table *classes.Table) ([]Detection, error) {
	order := make([]int, len(kept))
	copy(order, kept)

	sort.SliceStable(order, func(a, b int) bool {
		ba, bb := boxes[order[a]], boxes[order[b]]
		if ba.Score != bb.Score {
			return ba.Score > bb.Score
		}
		if ba.Class != bb.Class {
			return ba.Class < bb.Class
		}
		return ba.Anchor < bb.Anchor
	})

	detections := make([]Detection, 0, len(order))
	for _, idx := range order {
		b := boxes[idx]
		name, ok := table.Name(b.Class)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownClassID, "class %d, table holds %d classes",
				b.Class, table.Len())
		}
		detections = append(detections, Detection{
			Box:        b.Box,
			Confidence: b.Score,
			Class:      b.Class,
			ClassName:  name,
		})
	}

	return detections, nil
}
