// Package snap aligns candidate frames to nearby anchors.
//
// [Resolve] snaps a single frame. Anchors come in three priority tiers:
//
//  1. Item edges: the start and end frame of every item except the one being
//     moved.
//  2. Secondary anchors: frame 0 (track start) and the playhead.
//  3. The grid: the multiple of [GridFrames] nearest to the frame.
//
// Within a tier the nearest anchor wins. A tier is accepted as soon as its
// best anchor lies strictly closer than the threshold, and lower tiers are
// never consulted after that, even if one of them holds a numerically closer
// anchor.
//
// [ResolveRange] snaps a moving interval by trying both its left and right
// edges and keeping whichever needs the smaller displacement, preferring the
// left edge on ties.
//
// Everything here is a pure function of its arguments.
package snap
