package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - guides
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleGuide    = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Timeline Output
// =============================================================================

// printStats prints timeline counts on one line.
func printStats(tl *timeline.Timeline, cached bool) {
	parts := []string{
		fmt.Sprintf("%d tracks", len(tl.Tracks)),
		fmt.Sprintf("%d items", tl.ItemCount()),
		fmt.Sprintf("ends at %d", tl.End()),
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// timelineTable lays out every item, one row each, grouped by track.
func timelineTable(tl *timeline.Timeline) string {
	var rows [][]string
	for i, t := range tl.Tracks {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		for j, it := range t.SortedByFrom() {
			label := ""
			if j == 0 {
				label = fmt.Sprintf("%d %s", i, name)
			}
			rows = append(rows, []string{
				label,
				it.ID,
				string(it.Kind),
				strconv.Itoa(it.From),
				strconv.Itoa(it.End()),
				strconv.Itoa(it.DurationInFrames),
				itemDetail(it),
			})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Track", "Item", "Type", "From", "End", "Frames", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleHighlight
			case col >= 3 && col <= 5:
				return StyleValue.Align(lipgloss.Right)
			case col == 6:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

func itemDetail(it timeline.Item) string {
	switch {
	case it.Text != nil:
		return strconv.Quote(it.Text.Text)
	case it.Solid != nil:
		return it.Solid.Color
	case it.Image != nil:
		return it.Image.Src
	}
	if m := it.Media(); m != nil {
		return fmt.Sprintf("%s +%d", m.Src, m.SourceStartInFrames)
	}
	return ""
}

// printPreview prints one preview line: target, frame, snap guide and zone.
func printPreview(i int, pv placement.Preview) {
	target := "track " + pv.TrackID
	if pv.CreateTrack {
		target = fmt.Sprintf("new track @%d", pv.InsertIndex)
	}
	line := fmt.Sprintf("%3d  %-18s frame %-5d", i, target, pv.Frame)
	if pv.GuideFrame != nil {
		line += styleGuide.Render(fmt.Sprintf(" snap %s→%d", pv.Edge, *pv.GuideFrame))
	}
	fmt.Println(line + "  " + StyleDim.Render(string(pv.Zone)))
}

func printAction(act placement.DropAction) {
	var where string
	switch act.Kind {
	case placement.ActionCreateTrack:
		where = fmt.Sprintf("new track at index %d", act.InsertIndex)
	default:
		where = "track " + act.TrackID
	}
	printSuccess("%s %s %s frame %d", StyleHighlight.Render(string(act.Kind)), act.ItemID, iconArrow+" "+where+",", act.Frame)
}
