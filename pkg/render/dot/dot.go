package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds payload details (source offsets, fades, text) to labels.
	Detailed bool

	// Highlight is an item id drawn with a thick outline.
	Highlight string

	// Preview, when set, is drawn as a dashed ghost box.
	Preview *placement.Preview
}

var kindColors = map[timeline.Kind]string{
	timeline.KindSolid: "#e8e8e8",
	timeline.KindText:  "#fff3c4",
	timeline.KindVideo: "#cfe3ff",
	timeline.KindAudio: "#d4f5d4",
	timeline.KindImage: "#f3d9f7",
}

// ToDOT converts a timeline to Graphviz DOT source.
func ToDOT(tl *timeline.Timeline, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph timeline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#999999\", arrowsize=0.6];\n")

	ghostTrack := ""
	if pv := opts.Preview; pv != nil && !pv.CreateTrack {
		ghostTrack = pv.TrackID
	}

	for i, t := range tl.Tracks {
		if pv := opts.Preview; pv != nil && pv.CreateTrack && pv.InsertIndex == i {
			writeNewTrack(&buf, *pv)
		}
		writeTrack(&buf, i, t, opts, t.ID == ghostTrack)
	}
	if pv := opts.Preview; pv != nil && pv.CreateTrack && pv.InsertIndex >= len(tl.Tracks) {
		writeNewTrack(&buf, *pv)
	}

	// Invisible edges between track headers keep clusters stacked in order.
	for i := 1; i < len(tl.Tracks); i++ {
		fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", headerID(tl.Tracks[i-1].ID), headerID(tl.Tracks[i].ID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeTrack(buf *bytes.Buffer, idx int, t timeline.Track, opts Options, ghost bool) {
	fmt.Fprintf(buf, "\n  subgraph %q {\n", "cluster_"+t.ID)
	fmt.Fprintf(buf, "    label=%q;\n", trackLabel(idx, t))
	buf.WriteString("    style=\"rounded\";\n    color=\"#cccccc\";\n")
	if t.Hidden {
		buf.WriteString("    fontcolor=\"#aaaaaa\";\n")
	}

	head := headerID(t.ID)
	fmt.Fprintf(buf, "    %q [label=\"\", shape=point, width=0.05];\n", head)

	prevID, prevEnd := head, 0
	for _, it := range t.SortedByFrom() {
		fmt.Fprintf(buf, "    %q [%s];\n", it.ID, strings.Join(itemAttrs(it, opts), ", "))
		fmt.Fprintf(buf, "    %q -> %q [label=%q];\n", prevID, it.ID, gapLabel(it.From-prevEnd))
		prevID, prevEnd = it.ID, it.End()
	}
	if ghost {
		writeGhost(buf, *opts.Preview, "    ")
		fmt.Fprintf(buf, "    %q -> %q [style=invis];\n", head, ghostID(opts.Preview.ItemID))
	}
	buf.WriteString("  }\n")
}

func writeNewTrack(buf *bytes.Buffer, pv placement.Preview) {
	fmt.Fprintf(buf, "\n  subgraph %q {\n", "cluster_new")
	fmt.Fprintf(buf, "    label=%q;\n", fmt.Sprintf("new track @%d", pv.InsertIndex))
	buf.WriteString("    style=\"rounded,dashed\";\n    color=\"#4a90d9\";\n")
	writeGhost(buf, pv, "    ")
	buf.WriteString("  }\n")
}

func writeGhost(buf *bytes.Buffer, pv placement.Preview, indent string) {
	label := fmt.Sprintf("%s\n[%d, %d)\n%s", pv.ItemID, pv.Frame, pv.Frame+pv.Duration, pv.Zone)
	if pv.GuideFrame != nil {
		label += fmt.Sprintf("\nsnap %s @%d", pv.Edge, *pv.GuideFrame)
	}
	fmt.Fprintf(buf, "%s%q [label=%q, style=\"rounded,dashed\", color=\"#4a90d9\", fontcolor=\"#4a90d9\", fillcolor=white];\n",
		indent, ghostID(pv.ItemID), label)
}

func trackLabel(idx int, t timeline.Track) string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	var flags []string
	if t.Locked {
		flags = append(flags, "locked")
	}
	if t.Hidden {
		flags = append(flags, "hidden")
	}
	label := fmt.Sprintf("%d: %s", idx, name)
	if len(flags) > 0 {
		label += " (" + strings.Join(flags, ", ") + ")"
	}
	return label
}

func itemAttrs(it timeline.Item, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", itemLabel(it, opts.Detailed)),
		fmt.Sprintf("fillcolor=%q", fillColor(it.Kind)),
	}
	if it.ID == opts.Highlight {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

func fillColor(k timeline.Kind) string {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return "white"
}

func itemLabel(it timeline.Item, detailed bool) string {
	label := fmt.Sprintf("%s\n%s [%d, %d)", it.ID, it.Kind, it.From, it.End())
	if !detailed {
		return label
	}
	var parts []string
	switch {
	case it.Text != nil:
		parts = append(parts, fmt.Sprintf("text: %q", it.Text.Text))
	case it.Solid != nil:
		parts = append(parts, "color: "+it.Solid.Color)
	case it.Image != nil:
		parts = append(parts, "src: "+it.Image.Src)
		parts = append(parts, fadeParts(it.Image.FadeInFrames, it.Image.FadeOutFrames)...)
	}
	if m := it.Media(); m != nil {
		parts = append(parts, "src: "+m.Src, fmt.Sprintf("source: +%d", m.SourceStartInFrames))
		if m.SourceDurationInFrames > 0 {
			parts = append(parts, fmt.Sprintf("length: %d", m.SourceDurationInFrames))
		}
		parts = append(parts, fadeParts(m.FadeInFrames, m.FadeOutFrames)...)
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fadeParts(in, out int) []string {
	var parts []string
	if in > 0 {
		parts = append(parts, fmt.Sprintf("fade in: %d", in))
	}
	if out > 0 {
		parts = append(parts, fmt.Sprintf("fade out: %d", out))
	}
	return parts
}

func gapLabel(gap int) string {
	if gap <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", gap)
}

func headerID(trackID string) string { return "track:" + trackID }
func ghostID(itemID string) string   { return "ghost:" + itemID }
