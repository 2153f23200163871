// Package pkg holds the cliptower libraries.
//
// # Overview
//
// Cliptower is the placement engine of a multi-track video timeline editor.
// Given a timeline snapshot and a pointer position during a drag, it decides
// which track the clip lands on (or whether a new track opens between two
// others), at which frame, and how that frame snaps to nearby edges, the
// playhead or the grid. The pkg directory is organized as follows:
//
//  1. [timeline] - The document model: tracks, items and their payloads
//  2. [placement] - Pure placement rules (zones, snapping, overlap, split, trim)
//  3. [editor] - Applies placement results to snapshots, replays drag scripts
//  4. [io] - JSON and YAML wire formats for timelines and drag scripts
//  5. [render/dot] - Graphviz diagrams of timelines and drop previews
//  6. [store], [cache], [config] - Persistence, caching and settings
//  7. [api], [mcpserver] - HTTP and MCP front ends
//
// # Data Flow
//
//	pointer events (x, y)
//	         ↓
//	    [placement/zone]     which track, or a new one?
//	         ↓
//	    [placement/snap]     which frame, snapped to what?
//	         ↓
//	    [placement/overlap]  pushed right past collisions
//	         ↓
//	    [placement] Preview → FinalizeDrop → DropAction
//	         ↓
//	    [editor]             new timeline snapshot
//
// # Quick Start
//
//	tl, _ := io.ImportTimeline("timeline.json")
//	ed := editor.New(placement.DefaultOptions(), nil, nil, nil)
//
//	d := placement.Drag{Item: clip, OriginalTrackID: "video", GrabOffsetY: 28}
//	pv := ed.Preview(ctx, tl, d, placement.Pointer{X: 480, Y: 100})
//	out, act, err := ed.Drop(ctx, tl, d, placement.Pointer{X: 480, Y: 100})
//
// The placement packages never mutate their inputs and hold no state between
// calls, so one Editor can serve concurrent requests.
//
// [timeline]: github.com/matzehuels/cliptower/pkg/timeline
// [placement]: github.com/matzehuels/cliptower/pkg/placement
// [placement/zone]: github.com/matzehuels/cliptower/pkg/placement/zone
// [placement/snap]: github.com/matzehuels/cliptower/pkg/placement/snap
// [placement/overlap]: github.com/matzehuels/cliptower/pkg/placement/overlap
// [editor]: github.com/matzehuels/cliptower/pkg/editor
// [io]: github.com/matzehuels/cliptower/pkg/io
// [render/dot]: github.com/matzehuels/cliptower/pkg/render/dot
// [store]: github.com/matzehuels/cliptower/pkg/store
// [cache]: github.com/matzehuels/cliptower/pkg/cache
// [config]: github.com/matzehuels/cliptower/pkg/config
// [api]: github.com/matzehuels/cliptower/pkg/api
// [mcpserver]: github.com/matzehuels/cliptower/pkg/mcpserver
package pkg
