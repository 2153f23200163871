// Package placement decides where a dragged clip lands on a multi-track
// timeline and how clips are split and trimmed.
//
// A drag is a series of independent [BuildPreview] calls, one per pointer
// event, followed by a single [FinalizeDrop] on release. Nothing is retained
// between calls: every function reads an immutable snapshot of the tracks
// and returns a plain value. Abandoning a drag needs no cleanup.
//
// Each preview combines three sub-decisions:
//
//   - vertical: [zone.Classify] picks an existing track or a seam where a new
//     track would be created;
//   - horizontal: [snap.ResolveRange] aligns the clip's left or right edge
//     to a nearby anchor, trying item edges alone first so that butting a clip
//     against a neighbour wins over grid and playhead snapping;
//   - collision: when the target is an existing track, [overlap.Resolve]
//     pushes the clip right until it no longer intersects anything. A pushed
//     position is not reported as a snap, so the guide line is dropped.
//
// [FinalizeDrop] turns the last preview into exactly one [DropAction]: create
// a track, move within the original track, or move to another track. Hosts
// apply the action to their own timeline and delete any track the move left
// empty.
//
// [Split] and [Trim] are the two edits that work on a single item
// independently of dragging. Both return the edited item and a flag telling
// whether anything changed; invalid requests are no-ops rather than errors.
package placement
