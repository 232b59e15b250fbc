package inference

import (
	"context"
	"image"
	"time"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/models/model"
	"github.com/nvr-ai/go-detect/models/postprocess"
)

// Detector couples a model's post-processing with a runtime session,
// giving the end-to-end image → detections path. The image size is taken
// from the image on every call, so detection never depends on state left
// behind by a previous call.
type Detector struct {
	model   model.Model
	session *Session
	stats   *Stats
}

// NewDetector creates a session for the model and returns the coupled
// detector. Close releases the session.
func NewDetector(m model.Model) (*Detector, error) {
	opts := m.Options()
	session, err := NewSession(SessionConfig{
		ModelPath: opts.Path,
		Input:     opts.Input,
		Layout:    opts.Layout,
	})
	if err != nil {
		return nil, err
	}
	return &Detector{model: m, session: session, stats: newStats()}, nil
}

// Stats returns the per-stage latency statistics accumulated across
// Detect calls.
func (d *Detector) Stats() *Stats {
	return d.stats
}

// Detect preprocesses the image, runs inference and decodes the output
// into the final detection list.
//
// Arguments:
//   - ctx: Cancellation checked before the (non-interruptible) run.
//   - img: The decoded source image.
//
// Returns:
//   - []postprocess.Detection: Ordered by descending confidence.
//   - error: Preprocessing, runtime or decode failure.
func (d *Detector) Detect(ctx context.Context, img image.Image) ([]postprocess.Detection, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	opts := d.model.Options()
	start := time.Now()
	if err := PrepareInput(img, opts.Input, d.session.Input()); err != nil {
		return nil, err
	}
	d.stats.record("preprocess", time.Since(start))

	start = time.Now()
	output, err := d.session.Run()
	if err != nil {
		return nil, err
	}
	d.stats.record("inference", time.Since(start))

	start = time.Now()
	bounds := img.Bounds()
	detections, err := d.model.PostProcess(output, images.Size{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	})
	if err != nil {
		return nil, err
	}
	d.stats.record("postprocess", time.Since(start))
	return detections, nil
}

// Close releases the underlying session.
func (d *Detector) Close() {
	d.session.Close()
}
