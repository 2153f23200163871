// Package timeline defines the data model shared by the placement engine and
// its hosts: tracks, the items placed on them, and the read-only transport
// and view state of the composition.
//
// # Items
//
// An [Item] is a tagged union. [Item.Kind] selects the variant and exactly one
// payload pointer (Solid, Text, Video, Audio or Image) carries the
// type-specific fields. Common fields are the id, the start frame (From) and
// the length (DurationInFrames). Video and audio items share the [Media]
// payload, whose SourceStartInFrames is the offset into the underlying file at
// which this segment begins playing.
//
// # Invariants
//
// Within a track no two items' [From, From+DurationInFrames) intervals may
// overlap. Frames are never negative and durations are always positive.
// [Validate] checks every invariant; the placement engine guarantees it never
// produces a placement that breaks them.
//
// # Ownership
//
// A [Timeline] owns its tracks and each [Track] owns its items. Track order is
// meaningful (it is the vertical stacking order); item order within a track
// only determines z-stacking, placement is decided by From alone.
//
// The mutation primitives in this package ([Timeline.RemoveItem],
// [Timeline.InsertTrack], [Timeline.AddItem], [Timeline.ReplaceItem]) modify
// the receiver in place. Removing the last item from a track removes the
// track. Callers that need snapshot semantics work on a [Timeline.Clone].
package timeline
