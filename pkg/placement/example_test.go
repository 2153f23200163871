package placement_test

import (
	"fmt"

	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

func ExampleBuildPreview() {
	// Two tracks; drag "b" up next to "a", releasing 2 frames past its end.
	tracks := []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 30, "#e11d48")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#2563eb")}},
	}
	opts := placement.DefaultOptions()
	drag := placement.Drag{Item: tracks[1].Items[0], OriginalTrackID: "t2", GrabOffsetX: 0, GrabOffsetY: 28}

	pv := placement.BuildPreview(placement.Pointer{X: opts.XAt(32), Y: 36}, drag, tracks, 0, opts)
	act := placement.FinalizeDrop(pv, tracks, "t2")

	fmt.Println("Track:", pv.TrackID)
	fmt.Println("Frame:", pv.Frame)
	fmt.Println("Guide:", *pv.GuideFrame)
	fmt.Println("Action:", act.Kind)
	// Output:
	// Track: t1
	// Frame: 30
	// Guide: 30
	// Action: move-to-track
}

func ExampleSplit() {
	v := timeline.NewVideo("v", 0, 90, "intro.mp4", 12)

	first, second, ok := placement.Split(v, 30, "v2")
	fmt.Println(ok)
	fmt.Println(first.DurationInFrames, first.Video.SourceStartInFrames)
	fmt.Println(second.From, second.DurationInFrames, second.Video.SourceStartInFrames)
	// Output:
	// true
	// 30 12
	// 30 60 42
}
