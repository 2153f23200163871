package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/zone"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

const (
	laneWidth  = 72 // cells per lane
	nudgeRowPx = 8  // pixels per up/down key press
	coarseStep = 10 // frames per shift+left/right when the grid is off
)

var (
	laneLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	laneItemStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	laneSelStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	laneGhostStyle = lipgloss.NewStyle().Foreground(colorYellow)
	laneEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// viewKeys are the bindings of the drag view.
type viewKeys struct {
	Next, Prev   key.Binding
	PickUp, Drop key.Binding
	Cancel, Quit key.Binding
	Left, Right  key.Binding
	JumpLeft     key.Binding
	JumpRight    key.Binding
	Up, Down     key.Binding
	TrackUp      key.Binding
	TrackDown    key.Binding

	// dragging switches the short help to the drag bindings.
	dragging bool
}

var defaultViewKeys = viewKeys{
	Next:      key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab", "next item")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab", "prev item")),
	PickUp:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "pick up")),
	Drop:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "drop")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "frame")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	JumpLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←/→", "grid")),
	JumpRight: key.NewBinding(key.WithKeys("shift+right", "L")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "nudge")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	TrackUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑/↓", "track")),
	TrackDown: key.NewBinding(key.WithKeys("shift+down", "J")),
}

// ShortHelp implements help.KeyMap.
func (k viewKeys) ShortHelp() []key.Binding {
	if k.dragging {
		return []key.Binding{k.Left, k.JumpLeft, k.Up, k.TrackUp, k.Drop, k.Cancel}
	}
	return []key.Binding{k.Next, k.Prev, k.PickUp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k viewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// viewCommand creates the interactive "view" command.
func (c *CLI) viewCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "view <timeline>",
		Short: "Drag items around a timeline interactively",
		Long:  `Open a terminal view of the timeline, pick up items with the keyboard and drop them elsewhere. The drop preview updates on every key press.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			tl, err := readTimeline(args[0])
			if err != nil {
				return err
			}
			ed, err := c.newEditor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			m := newViewModel(cmd.Context(), ed, tl)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			vm := final.(viewModel)
			if vm.drops == 0 {
				printInfo("No changes")
				return nil
			}
			printSuccess("Applied %d drop(s)", vm.drops)
			if output == "" {
				printStats(vm.tl, false)
				return nil
			}
			return writeResult(vm.tl, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the edited timeline here (- for stdout)")
	return cmd
}

// =============================================================================
// viewModel
// =============================================================================

// viewModel is the bubbletea model of the drag view. Selection walks items
// in track order; a drag tracks a synthetic pointer that the arrow keys move.
type viewModel struct {
	ctx context.Context
	ed  *editor.Editor
	tl  *timeline.Timeline

	ids    []string
	cursor int

	drag    *placement.Drag
	pointer placement.Pointer
	preview placement.Preview

	keys   viewKeys
	help   help.Model
	status string
	drops  int
}

func newViewModel(ctx context.Context, ed *editor.Editor, tl *timeline.Timeline) viewModel {
	m := viewModel{ctx: ctx, ed: ed, tl: tl, keys: defaultViewKeys, help: help.New()}
	m.ids = itemIDs(tl)
	return m
}

// itemIDs lists item ids top track first, each track in time order.
func itemIDs(tl *timeline.Timeline) []string {
	var ids []string
	for _, t := range tl.Tracks {
		for _, it := range t.SortedByFrom() {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (m viewModel) selected() string {
	if m.cursor < 0 || m.cursor >= len(m.ids) {
		return ""
	}
	return m.ids[m.cursor]
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.drag != nil {
			return m.updateDrag(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if len(m.ids) > 0 {
				m.cursor = (m.cursor + 1) % len(m.ids)
			}
		case key.Matches(msg, m.keys.Prev):
			if len(m.ids) > 0 {
				m.cursor = (m.cursor - 1 + len(m.ids)) % len(m.ids)
			}
		case key.Matches(msg, m.keys.PickUp):
			m = m.pickUp()
		}
	}
	return m, nil
}

func (m viewModel) pickUp() viewModel {
	it, trackID, ok := m.tl.Item(m.selected())
	if !ok {
		return m
	}
	opts := m.ed.Options
	row := m.tl.TrackIndex(trackID)
	geom := zone.Geometry{TrackHeight: opts.TrackHeight, Tolerance: opts.Tolerance}

	m.drag = &placement.Drag{Item: it, OriginalTrackID: trackID}
	m.keys.dragging = true
	m.pointer = placement.Pointer{
		X: opts.XAt(it.From),
		Y: zone.RestingTop(row, opts.ItemHeight, geom),
	}
	m.status = ""
	return m.refresh()
}

func (m viewModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.ed.Options
	frame := opts.PixelsPerFrame
	coarse := coarseStep
	if opts.Grid > 0 {
		coarse = opts.Grid
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.drag = nil
		m.keys.dragging = false
		m.status = "drag cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Drop):
		out, act, err := m.ed.Drop(m.ctx, m.tl, *m.drag, m.pointer)
		m.drag = nil
		m.keys.dragging = false
		if err != nil {
			m.status = "drop failed: " + err.Error()
			return m, nil
		}
		m.tl = out
		m.ids = itemIDs(out)
		m.cursor = max(0, indexOf(m.ids, act.ItemID))
		m.drops++
		m.status = describeAction(act)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.pointer.X -= frame
	case key.Matches(msg, m.keys.Right):
		m.pointer.X += frame
	case key.Matches(msg, m.keys.JumpLeft):
		m.pointer.X -= float64(coarse) * frame
	case key.Matches(msg, m.keys.JumpRight):
		m.pointer.X += float64(coarse) * frame
	case key.Matches(msg, m.keys.Up):
		m.pointer.Y -= nudgeRowPx
	case key.Matches(msg, m.keys.Down):
		m.pointer.Y += nudgeRowPx
	case key.Matches(msg, m.keys.TrackUp):
		m.pointer.Y -= opts.TrackHeight
	case key.Matches(msg, m.keys.TrackDown):
		m.pointer.Y += opts.TrackHeight
	default:
		return m, nil
	}
	m.pointer.X = max(m.pointer.X, 0)
	return m.refresh(), nil
}

func (m viewModel) refresh() viewModel {
	if m.drag != nil {
		m.preview = m.ed.Preview(m.ctx, m.tl, *m.drag, m.pointer)
	}
	return m
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func describeAction(act placement.DropAction) string {
	if act.Kind == placement.ActionCreateTrack {
		return fmt.Sprintf("%s: %s on new track %d @ %d", act.Kind, act.ItemID, act.InsertIndex, act.Frame)
	}
	return fmt.Sprintf("%s: %s on %s @ %d", act.Kind, act.ItemID, act.TrackID, act.Frame)
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("cliptower"))
	b.WriteString("\n\n")

	scale := m.framesPerCell()
	ghostLane := -1
	if m.drag != nil && m.preview.CreateTrack {
		ghostLane = m.preview.InsertIndex
	}
	for i, t := range m.tl.Tracks {
		if i == ghostLane {
			b.WriteString(m.ghostLane(scale))
		}
		b.WriteString(m.lane(t, scale))
	}
	if ghostLane >= len(m.tl.Tracks) {
		b.WriteString(m.ghostLane(scale))
	}
	b.WriteString("\n")

	if m.drag != nil {
		b.WriteString(m.previewLine())
	} else if id := m.selected(); id != "" {
		it, trackID, _ := m.tl.Item(id)
		b.WriteString(StyleHighlight.Render(id))
		b.WriteString(laneEmptyStyle.Render(fmt.Sprintf("  %s  %s", trackID, itemDetail(it))))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleSuccess.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// framesPerCell fits the timeline, plus room for the dragged item, into a lane.
func (m viewModel) framesPerCell() int {
	end := m.tl.End()
	if m.drag != nil {
		end = max(end, m.preview.Frame+m.preview.Duration)
	}
	return max(1, (end+laneWidth-1)/laneWidth)
}

func (m viewModel) lane(t timeline.Track, scale int) string {
	cells := make([]lipgloss.Style, laneWidth)
	runes := make([]rune, laneWidth)
	for i := range cells {
		cells[i], runes[i] = laneEmptyStyle, '·'
	}
	fill := func(from, dur int, r rune, st lipgloss.Style) {
		lo, hi := from/scale, (from+dur+scale-1)/scale
		for c := lo; c < hi && c < laneWidth; c++ {
			cells[c], runes[c] = st, r
		}
	}

	dragging := ""
	if m.drag != nil {
		dragging = m.drag.Item.ID
	}
	for _, it := range t.Items {
		st := laneItemStyle
		if it.ID == m.selected() {
			st = laneSelStyle
		}
		r := '█'
		if it.ID == dragging {
			r = '░'
		}
		fill(it.From, it.DurationInFrames, r, st)
	}
	if m.drag != nil && !m.preview.CreateTrack && m.preview.TrackID == t.ID {
		fill(m.preview.Frame, m.preview.Duration, '▓', laneGhostStyle)
	}

	name := t.Name
	if name == "" {
		name = t.ID
	}
	return laneLabelStyle.Render(name) + renderCells(runes, cells) + "\n"
}

func (m viewModel) ghostLane(scale int) string {
	runes := make([]rune, laneWidth)
	cells := make([]lipgloss.Style, laneWidth)
	for i := range runes {
		runes[i], cells[i] = ' ', laneEmptyStyle
	}
	lo, hi := m.preview.Frame/scale, (m.preview.Frame+m.preview.Duration+scale-1)/scale
	for c := lo; c < hi && c < laneWidth; c++ {
		runes[c], cells[c] = '▓', laneGhostStyle
	}
	return laneLabelStyle.Foreground(colorYellow).Render("+ new track") + renderCells(runes, cells) + "\n"
}

// renderCells styles runs of equally styled cells together.
func renderCells(runes []rune, cells []lipgloss.Style) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && runes[i] == runes[start] && cells[i].GetForeground() == cells[start].GetForeground() {
			continue
		}
		b.WriteString(cells[start].Render(string(runes[start:i])))
		start = i
	}
	return b.String()
}

func (m viewModel) previewLine() string {
	pv := m.preview
	where := "track " + pv.TrackID
	if pv.CreateTrack {
		where = fmt.Sprintf("new track at %d", pv.InsertIndex)
	}
	line := fmt.Sprintf("%s %s %s @ %d  (%s)", iconArrow, pv.ItemID, where, pv.Frame, pv.Zone)
	if pv.GuideFrame != nil {
		line += styleGuide.Render(fmt.Sprintf("  snap %s @ %d", pv.Edge, *pv.GuideFrame))
	}
	return line
}
