package placement

import (
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/placement/zone"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Default geometry and snapping parameters.
const (
	DefaultTrackHeight    = 72.0
	DefaultItemHeight     = 56.0
	DefaultPixelsPerFrame = 4.0
	DefaultSnapThreshold  = 5
)

// Options carries the host-supplied view geometry and snapping settings.
type Options struct {
	PixelsPerFrame float64
	TrackHeight    float64
	ItemHeight     float64

	SnapEnabled   bool
	SnapThreshold int
	Grid          int

	// Tolerance is the pixel slack of boundary tests.
	Tolerance float64

	// MinDuration is the trim floor. Zero means timeline.MinDurationInFrames.
	MinDuration int
}

// DefaultOptions returns the stock editor geometry with snapping enabled.
func DefaultOptions() Options {
	return Options{
		PixelsPerFrame: DefaultPixelsPerFrame,
		TrackHeight:    DefaultTrackHeight,
		ItemHeight:     DefaultItemHeight,
		SnapEnabled:    true,
		SnapThreshold:  DefaultSnapThreshold,
		Grid:           snap.GridFrames,
		Tolerance:      zone.DefaultTolerance,
		MinDuration:    timeline.MinDurationInFrames,
	}
}

func (o Options) minDuration() int {
	if o.MinDuration > 0 {
		return o.MinDuration
	}
	return timeline.MinDurationInFrames
}

func (o Options) snapOptions(exclude string, playhead int) snap.Options {
	return snap.Options{
		ExcludeItemID: exclude,
		Playhead:      playhead,
		Enabled:       o.SnapEnabled,
		Threshold:     o.SnapThreshold,
		Grid:          o.Grid,
	}
}

func (o Options) geometry() zone.Geometry {
	return zone.Geometry{TrackHeight: o.TrackHeight, Tolerance: o.Tolerance}
}

// FrameAt converts a horizontal content position to a frame, clamped to 0.
func (o Options) FrameAt(x float64) int {
	if o.PixelsPerFrame <= 0 {
		return 0
	}
	f := int(x/o.PixelsPerFrame + 0.5)
	return max(f, 0)
}

// XAt converts a frame to a horizontal content position.
func (o Options) XAt(frame int) float64 {
	return float64(frame) * o.PixelsPerFrame
}
