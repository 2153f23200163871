// Package zone decides, from the vertical position of a dragged item, whether
// the drag stays on a track, moves to another one, or opens a new track at a
// seam between rows.
//
// Rows are trackHeight pixels tall and row k spans [k·trackHeight,
// (k+1)·trackHeight). Boundary k is the horizontal line at k·trackHeight;
// boundaries 0 and n (for n tracks) are the extremes.
//
// The dragged item's box [top, top+height) is split into thirds. The tests
// run in a fixed order and the first one that matches decides:
//
//  1. Extremes. Touching boundary 0 or boundary n, or lying wholly beyond
//     it, creates a track at that extreme.
//  2. Inside a row. If the box touches neither boundary of the row holding
//     its vertical centre, that row is the target.
//  3. Top third below the source. If the top third reaches the boundary
//     under the source track, the target is the next track.
//  4. Bottom third above the source. If the bottom third reaches the
//     boundary over the source track, the target is the previous track.
//  5. Middle third on a seam. A boundary crossed by the middle third becomes
//     an insertion point, unless it is adjacent to the source track and the
//     source holds only the dragged item. Then the item stays where it is,
//     so a single-item track is never left empty mid-drag.
//  6. Otherwise the row holding the centre is the target.
//
// "Touching" means overlapping within [Geometry.Tolerance] pixels.
package zone
