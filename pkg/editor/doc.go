// Package editor is the host side of the placement engine: it owns
// timeline snapshots, applies the intents produced by package placement,
// and replays recorded drags.
//
// The Apply functions mutate a *timeline.Timeline in place and delete any
// track a move leaves empty. [Editor] wraps them with snapshot semantics
// (every call returns a new timeline and leaves its input alone), logging,
// observability hooks and a result cache for [Editor.Replay].
package editor
