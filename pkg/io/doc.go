// Package io reads and writes timeline documents and drag scripts.
//
// # Timeline format
//
// A timeline is a JSON (or YAML) object with a "tracks" array. Items are
// flat objects discriminated by "type"; the type-specific fields sit next to
// the common ones:
//
//	{
//	  "fps": 30,
//	  "currentFrame": 0,
//	  "tracks": [
//	    {"id": "t1", "items": [
//	      {"id": "bg", "type": "solid", "from": 0, "durationInFrames": 90, "color": "#111827"},
//	      {"id": "intro", "type": "video", "from": 90, "durationInFrames": 120,
//	       "src": "intro.mp4", "sourceStartInFrames": 30, "fadeInFrames": 10}
//	    ]}
//	  ]
//	}
//
// Recognised types are solid (color), text (text, color, fontSize), image
// (src, fade frames) and video/audio (src, sourceStartInFrames,
// sourceDurationInFrames, volume, fade frames).
//
// [ReadTimeline] and [ImportTimeline] reject unknown types and any document
// that breaks the timeline invariants (see timeline.Validate), so callers
// can hand the result straight to the placement engine.
//
// # Drag scripts
//
// A drag script records one drag for replay:
//
//	{
//	  "itemId": "intro",
//	  "grabOffsetX": 12, "grabOffsetY": 28,
//	  "events": [{"x": 400, "y": 30}, {"x": 520, "y": 100}]
//	}
//
// Set "newItem" (a flat item object) instead of "itemId" to drag in an item
// from outside the timeline, and "cancel": true to abandon the drag instead
// of dropping.
package io
