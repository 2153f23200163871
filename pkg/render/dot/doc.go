// Package dot renders timelines as Graphviz diagrams for inspecting
// placements.
//
// Each track becomes a cluster laid out left to right, items become boxes
// ordered by start frame, and the gaps between neighbouring items are
// labelled on the edges that chain them. A drag preview can be overlaid as
// a dashed ghost box on its target track, or on a new cluster when the
// preview creates a track.
//
//	src := dot.ToDOT(tl, dot.Options{Preview: &pv})
//	svg, err := dot.Render(ctx, src, dot.FormatSVG)
//
// [Renderer] adds a content-addressed cache in front of [Render] so repeated
// renders of an unchanged timeline skip Graphviz.
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz];
// no external binaries are needed.
package dot
