package io

import (
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

type document struct {
	Tracks            []track `json:"tracks" yaml:"tracks"`
	CurrentFrame      int     `json:"currentFrame" yaml:"currentFrame"`
	Zoom              float64 `json:"zoom,omitempty" yaml:"zoom,omitempty"`
	CompositionWidth  int     `json:"compositionWidth,omitempty" yaml:"compositionWidth,omitempty"`
	CompositionHeight int     `json:"compositionHeight,omitempty" yaml:"compositionHeight,omitempty"`
	FPS               int     `json:"fps,omitempty" yaml:"fps,omitempty"`
	DurationInFrames  int     `json:"durationInFrames,omitempty" yaml:"durationInFrames,omitempty"`
}

type track struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Locked bool   `json:"locked,omitempty" yaml:"locked,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Items  []item `json:"items" yaml:"items"`
}

type item struct {
	ID               string `json:"id" yaml:"id"`
	Type             string `json:"type" yaml:"type"`
	From             int    `json:"from" yaml:"from"`
	DurationInFrames int    `json:"durationInFrames" yaml:"durationInFrames"`

	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize int    `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`

	Src                    string   `json:"src,omitempty" yaml:"src,omitempty"`
	SourceStartInFrames    int      `json:"sourceStartInFrames,omitempty" yaml:"sourceStartInFrames,omitempty"`
	SourceDurationInFrames int      `json:"sourceDurationInFrames,omitempty" yaml:"sourceDurationInFrames,omitempty"`
	Volume                 *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	FadeInFrames           int      `json:"fadeInFrames,omitempty" yaml:"fadeInFrames,omitempty"`
	FadeOutFrames          int      `json:"fadeOutFrames,omitempty" yaml:"fadeOutFrames,omitempty"`
}

func toWire(tl *timeline.Timeline) document {
	doc := document{
		Tracks:            make([]track, len(tl.Tracks)),
		CurrentFrame:      tl.CurrentFrame,
		Zoom:              tl.Zoom,
		CompositionWidth:  tl.CompositionWidth,
		CompositionHeight: tl.CompositionHeight,
		FPS:               tl.FPS,
		DurationInFrames:  tl.DurationInFrames,
	}
	for i, t := range tl.Tracks {
		wt := track{ID: t.ID, Name: t.Name, Locked: t.Locked, Hidden: t.Hidden, Items: make([]item, len(t.Items))}
		for j, it := range t.Items {
			wt.Items[j] = itemToWire(it)
		}
		doc.Tracks[i] = wt
	}
	return doc
}

func itemToWire(it timeline.Item) item {
	w := item{ID: it.ID, Type: string(it.Kind), From: it.From, DurationInFrames: it.DurationInFrames}
	switch it.Kind {
	case timeline.KindSolid:
		if it.Solid != nil {
			w.Color = it.Solid.Color
		}
	case timeline.KindText:
		if it.Text != nil {
			w.Text, w.Color, w.FontSize = it.Text.Text, it.Text.Color, it.Text.FontSize
		}
	case timeline.KindImage:
		if it.Image != nil {
			w.Src, w.FadeInFrames, w.FadeOutFrames = it.Image.Src, it.Image.FadeInFrames, it.Image.FadeOutFrames
		}
	case timeline.KindVideo, timeline.KindAudio:
		if m := it.Media(); m != nil {
			vol := m.Volume
			w.Src = m.Src
			w.SourceStartInFrames = m.SourceStartInFrames
			w.SourceDurationInFrames = m.SourceDurationInFrames
			w.Volume = &vol
			w.FadeInFrames, w.FadeOutFrames = m.FadeInFrames, m.FadeOutFrames
		}
	}
	return w
}

func fromWire(doc document) (*timeline.Timeline, error) {
	tl := &timeline.Timeline{
		Tracks:            make([]timeline.Track, len(doc.Tracks)),
		CurrentFrame:      doc.CurrentFrame,
		Zoom:              doc.Zoom,
		CompositionWidth:  doc.CompositionWidth,
		CompositionHeight: doc.CompositionHeight,
		FPS:               doc.FPS,
		DurationInFrames:  doc.DurationInFrames,
	}
	for i, wt := range doc.Tracks {
		t := timeline.Track{ID: wt.ID, Name: wt.Name, Locked: wt.Locked, Hidden: wt.Hidden, Items: make([]timeline.Item, len(wt.Items))}
		for j, w := range wt.Items {
			it, err := itemFromWire(w)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "track %s", wt.ID)
			}
			t.Items[j] = it
		}
		tl.Tracks[i] = t
	}
	return tl, nil
}

func itemFromWire(w item) (timeline.Item, error) {
	it := timeline.Item{ID: w.ID, Kind: timeline.Kind(w.Type), From: w.From, DurationInFrames: w.DurationInFrames}
	switch it.Kind {
	case timeline.KindSolid:
		it.Solid = &timeline.Solid{Color: w.Color}
	case timeline.KindText:
		it.Text = &timeline.Text{Text: w.Text, Color: w.Color, FontSize: w.FontSize}
	case timeline.KindImage:
		it.Image = &timeline.Image{Src: w.Src, FadeInFrames: w.FadeInFrames, FadeOutFrames: w.FadeOutFrames}
	case timeline.KindVideo, timeline.KindAudio:
		m := &timeline.Media{
			Src:                    w.Src,
			SourceStartInFrames:    w.SourceStartInFrames,
			SourceDurationInFrames: w.SourceDurationInFrames,
			Volume:                 1,
			FadeInFrames:           w.FadeInFrames,
			FadeOutFrames:          w.FadeOutFrames,
		}
		if w.Volume != nil {
			m.Volume = *w.Volume
		}
		if it.Kind == timeline.KindVideo {
			it.Video = m
		} else {
			it.Audio = m
		}
	default:
		return it, errors.New(errors.ErrCodeInvalidFormat, "item %q has unknown type %q", w.ID, w.Type)
	}
	return it, nil
}
