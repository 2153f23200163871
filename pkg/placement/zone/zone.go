package zone

import "math"

// DefaultTolerance is the pixel slack used by boundary overlap tests. It is
// smaller than the inset of an item resting in its row so that a resting item
// never touches its own row's boundaries.
const DefaultTolerance = 4.0

// Reason records which rule produced a Decision.
type Reason string

const (
	ReasonNoTracks       Reason = "no-tracks"
	ReasonTopExtreme     Reason = "top-extreme"
	ReasonBottomExtreme  Reason = "bottom-extreme"
	ReasonInsideRow      Reason = "inside-row"
	ReasonTopZone        Reason = "top-zone"
	ReasonBottomZone     Reason = "bottom-zone"
	ReasonSeam           Reason = "seam"
	ReasonAdjacentSingle Reason = "adjacent-single"
	ReasonCenter         Reason = "center"
)

// Geometry describes the row layout.
type Geometry struct {
	TrackHeight float64
	Tolerance   float64
}

func (g Geometry) tolerance() float64 {
	if g.Tolerance > 0 {
		return g.Tolerance
	}
	return DefaultTolerance
}

// Input is the dragged item's vertical state.
type Input struct {
	// Top and Height are the item box in content pixels.
	Top, Height float64

	// TrackCount is the number of existing tracks.
	TrackCount int

	// SourceIndex is the index of the track the item is dragged from, or -1
	// for items that do not come from a track.
	SourceIndex int

	// SourceItemCount is the number of items on the source track, the
	// dragged item included.
	SourceItemCount int
}

// Decision is where a drag would land.
type Decision struct {
	// CreateTrack is set when a new track should be inserted at InsertIndex.
	CreateTrack bool   `json:"createTrack"`
	InsertIndex int    `json:"insertIndex"`
	TrackIndex  int    `json:"trackIndex"`
	Reason      Reason `json:"reason"`
}

func create(at int, r Reason) Decision {
	return Decision{CreateTrack: true, InsertIndex: at, TrackIndex: -1, Reason: r}
}

func stay(at int, r Reason) Decision {
	return Decision{TrackIndex: at, InsertIndex: -1, Reason: r}
}

// Classify runs the zone rules described in the package documentation.
func Classify(in Input, g Geometry) Decision {
	n := in.TrackCount
	if n <= 0 || g.TrackHeight <= 0 {
		return create(0, ReasonNoTracks)
	}

	th, tol := g.TrackHeight, g.tolerance()
	top, bottom := in.Top, in.Top+in.Height
	third := in.Height / 3
	boundary := func(k int) float64 { return float64(k) * th }

	if bottom <= 0 || touches(top, bottom, 0, tol) {
		return create(0, ReasonTopExtreme)
	}
	if top >= boundary(n) || touches(top, bottom, boundary(n), tol) {
		return create(n, ReasonBottomExtreme)
	}

	row := rowAt(top+in.Height/2, th, n)
	if !touches(top, bottom, boundary(row), tol) && !touches(top, bottom, boundary(row+1), tol) {
		return stay(row, ReasonInsideRow)
	}

	src := in.SourceIndex
	hasSource := src >= 0 && src < n

	if hasSource && touches(top, top+third, boundary(src+1), tol) {
		if src+1 < n {
			return stay(src+1, ReasonTopZone)
		}
		return create(n, ReasonTopZone)
	}
	if hasSource && touches(bottom-third, bottom, boundary(src), tol) {
		if src > 0 {
			return stay(src-1, ReasonBottomZone)
		}
		return create(0, ReasonBottomZone)
	}

	for k := 0; k <= n; k++ {
		if !touches(top+third, bottom-third, boundary(k), tol) {
			continue
		}
		adjacent := hasSource && (k == src || k == src+1)
		if k == 0 || k == n || !adjacent || in.SourceItemCount > 1 {
			return create(k, ReasonSeam)
		}
		return stay(src, ReasonAdjacentSingle)
	}

	return stay(row, ReasonCenter)
}

// touches reports whether the horizontal line y lies within [lo, hi) widened
// by tol on both sides.
func touches(lo, hi, y, tol float64) bool {
	return lo-tol < y && y < hi+tol
}

// rowAt returns the row containing y, clamped to existing rows.
func rowAt(y, th float64, n int) int {
	r := int(math.Floor(y / th))
	return min(max(r, 0), n-1)
}

// RestingTop returns the top of an item of height h resting centred in row.
func RestingTop(row int, h float64, g Geometry) float64 {
	return float64(row)*g.TrackHeight + (g.TrackHeight-h)/2
}
