package timeline

import (
	"github.com/matzehuels/cliptower/pkg/errors"
)

// MinDurationInFrames is the floor below which resize and trim requests are
// rejected.
const MinDurationInFrames = 15

// Kind discriminates the item variants.
type Kind string

const (
	KindSolid Kind = "solid"
	KindText  Kind = "text"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

// Kinds lists every item kind in display order.
var Kinds = []Kind{KindSolid, KindText, KindVideo, KindAudio, KindImage}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSolid, KindText, KindVideo, KindAudio, KindImage:
		return true
	}
	return false
}

// IsMedia reports whether items of this kind play from an underlying media
// file and therefore carry a source offset.
func (k Kind) IsMedia() bool { return k == KindVideo || k == KindAudio }

// Solid is the payload of a solid-colour item.
type Solid struct {
	Color string `json:"color" bson:"color"`
}

// Text is the payload of a text item.
type Text struct {
	Text     string `json:"text" bson:"text"`
	Color    string `json:"color,omitempty" bson:"color,omitempty"`
	FontSize int    `json:"fontSize,omitempty" bson:"fontSize,omitempty"`
}

// Image is the payload of a still-image item.
type Image struct {
	Src           string `json:"src" bson:"src"`
	FadeInFrames  int    `json:"fadeInFrames,omitempty" bson:"fadeInFrames,omitempty"`
	FadeOutFrames int    `json:"fadeOutFrames,omitempty" bson:"fadeOutFrames,omitempty"`
}

// Media is the payload shared by video and audio items.
type Media struct {
	Src string `json:"src" bson:"src"`

	// SourceStartInFrames is the offset into the media at which this segment
	// starts playing.
	SourceStartInFrames int `json:"sourceStartInFrames,omitempty" bson:"sourceStartInFrames,omitempty"`

	// SourceDurationInFrames is the total length of the underlying media.
	// Zero means unknown, in which case trims are not length-limited.
	SourceDurationInFrames int `json:"sourceDurationInFrames,omitempty" bson:"sourceDurationInFrames,omitempty"`

	Volume        float64 `json:"volume,omitempty" bson:"volume,omitempty"`
	FadeInFrames  int     `json:"fadeInFrames,omitempty" bson:"fadeInFrames,omitempty"`
	FadeOutFrames int     `json:"fadeOutFrames,omitempty" bson:"fadeOutFrames,omitempty"`
}

// Item is a clip placed on a track. Exactly one payload pointer, the one
// matching Kind, is non-nil.
type Item struct {
	ID               string `json:"id" bson:"id"`
	Kind             Kind   `json:"type" bson:"type"`
	From             int    `json:"from" bson:"from"`
	DurationInFrames int    `json:"durationInFrames" bson:"durationInFrames"`

	Solid *Solid `json:"solid,omitempty" bson:"solid,omitempty"`
	Text  *Text  `json:"text,omitempty" bson:"text,omitempty"`
	Video *Media `json:"video,omitempty" bson:"video,omitempty"`
	Audio *Media `json:"audio,omitempty" bson:"audio,omitempty"`
	Image *Image `json:"image,omitempty" bson:"image,omitempty"`
}

// End returns the first frame after the item.
func (it Item) End() int { return it.From + it.DurationInFrames }

// Overlaps reports whether [from, from+duration) intersects the item.
func (it Item) Overlaps(from, duration int) bool {
	return from < it.End() && it.From < from+duration
}

// Contains reports whether frame lies strictly inside the item.
func (it Item) Contains(frame int) bool {
	return frame > it.From && frame < it.End()
}

// Media returns the media payload for video and audio items, nil otherwise.
func (it Item) Media() *Media {
	switch it.Kind {
	case KindVideo:
		return it.Video
	case KindAudio:
		return it.Audio
	}
	return nil
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.Solid != nil {
		s := *it.Solid
		out.Solid = &s
	}
	if it.Text != nil {
		t := *it.Text
		out.Text = &t
	}
	if it.Video != nil {
		m := *it.Video
		out.Video = &m
	}
	if it.Audio != nil {
		m := *it.Audio
		out.Audio = &m
	}
	if it.Image != nil {
		i := *it.Image
		out.Image = &i
	}
	return out
}

// checkPayload verifies that the payload pointers agree with Kind.
func (it Item) checkPayload() error {
	set := 0
	for _, p := range []bool{it.Solid != nil, it.Text != nil, it.Video != nil, it.Audio != nil, it.Image != nil} {
		if p {
			set++
		}
	}

	var ok bool
	switch it.Kind {
	case KindSolid:
		ok = it.Solid != nil
	case KindText:
		ok = it.Text != nil
	case KindVideo:
		ok = it.Video != nil
	case KindAudio:
		ok = it.Audio != nil
	case KindImage:
		ok = it.Image != nil
	default:
		return errors.New(errors.ErrCodeInvalidTimeline, "item %q has unknown type %q", it.ID, it.Kind)
	}
	if !ok || set != 1 {
		return errors.New(errors.ErrCodeInvalidTimeline, "item %q payload does not match type %q", it.ID, it.Kind)
	}
	return nil
}

// NewSolid builds a solid item.
func NewSolid(id string, from, duration int, color string) Item {
	return Item{ID: id, Kind: KindSolid, From: from, DurationInFrames: duration, Solid: &Solid{Color: color}}
}

// NewText builds a text item.
func NewText(id string, from, duration int, text string) Item {
	return Item{ID: id, Kind: KindText, From: from, DurationInFrames: duration, Text: &Text{Text: text}}
}

// NewVideo builds a video item playing src from sourceStart.
func NewVideo(id string, from, duration int, src string, sourceStart int) Item {
	return Item{ID: id, Kind: KindVideo, From: from, DurationInFrames: duration,
		Video: &Media{Src: src, SourceStartInFrames: sourceStart, Volume: 1}}
}

// NewAudio builds an audio item playing src from sourceStart.
func NewAudio(id string, from, duration int, src string, sourceStart int) Item {
	return Item{ID: id, Kind: KindAudio, From: from, DurationInFrames: duration,
		Audio: &Media{Src: src, SourceStartInFrames: sourceStart, Volume: 1}}
}

// NewImage builds an image item.
func NewImage(id string, from, duration int, src string) Item {
	return Item{ID: id, Kind: KindImage, From: from, DurationInFrames: duration, Image: &Image{Src: src}}
}
