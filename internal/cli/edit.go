package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// dragInputs loads the timeline and drag script shared by the drag commands.
func dragInputs(tlPath, scriptPath string) (*timeline.Timeline, *editor.Script, placement.Drag, error) {
	tl, err := readTimeline(tlPath)
	if err != nil {
		return nil, nil, placement.Drag{}, err
	}
	sc, err := tlio.ImportScript(scriptPath)
	if err != nil {
		return nil, nil, placement.Drag{}, err
	}
	d, err := sc.Drag(tl)
	if err != nil {
		return nil, nil, placement.Drag{}, err
	}
	return tl, sc, d, nil
}

// previewCommand creates the "preview" command.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <timeline> <script>",
		Short: "Print where a dragged item would land for each pointer event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			tl, sc, d, err := dragInputs(args[0], args[1])
			if err != nil {
				return err
			}
			ed, err := c.newEditor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			fmt.Println(StyleTitle.Render("Dragging " + d.Item.ID))
			for i, p := range sc.Events {
				printPreview(i, ed.Preview(cmd.Context(), tl, d, p))
			}
			return nil
		},
	}
}

// dropCommand creates the "drop" command.
func (c *CLI) dropCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "drop <timeline> <script>",
		Short: "Drop a dragged item at the script's last pointer position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			tl, sc, d, err := dragInputs(args[0], args[1])
			if err != nil {
				return err
			}
			ed, err := c.newEditor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			out, act, err := ed.Drop(cmd.Context(), tl, d, sc.Events[len(sc.Events)-1])
			if err != nil {
				return err
			}
			printAction(act)
			return writeResult(out, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting timeline here (- for stdout)")
	return cmd
}

// replayCommand creates the "replay" command.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		output string
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:   "replay <timeline> <script>",
		Short: "Replay a recorded drag and apply its drop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			tl, err := readTimeline(args[0])
			if err != nil {
				return err
			}
			sc, err := tlio.ImportScript(args[1])
			if err != nil {
				return err
			}
			ed, err := c.newEditor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			prog := newProgress(c.Logger)
			res, cached, err := ed.ReplayWithCacheInfo(cmd.Context(), tl, sc)
			if err != nil {
				return err
			}
			prog.done("Replayed drag", "events", len(sc.Events), "cached", cached)

			if !quiet {
				for i, pv := range res.Previews {
					printPreview(i, pv)
				}
			}
			if res.Action == nil {
				printWarning("drag cancelled, timeline unchanged")
			} else {
				printAction(*res.Action)
			}
			printStats(res.Timeline, cached)
			return writeResult(res.Timeline, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting timeline here (- for stdout)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print per-event previews")
	return cmd
}

// splitCommand creates the "split" command.
func (c *CLI) splitCommand() *cobra.Command {
	var (
		itemID string
		frame  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "split <timeline>",
		Short: "Split an item in two at a frame",
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

			out, ok, err := ed.Split(cmd.Context(), tl, itemID, frame)
			if err != nil {
				return err
			}
			if !ok {
				printWarning("frame %d is not inside %s, nothing split", frame, itemID)
				return nil
			}
			printSuccess("Split %s at frame %d", itemID, frame)
			return writeResult(out, output)
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "item to split")
	cmd.Flags().IntVar(&frame, "frame", 0, "absolute frame of the cut")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting timeline here (- for stdout)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("frame")
	return cmd
}

// trimCommand creates the "trim" command.
func (c *CLI) trimCommand() *cobra.Command {
	var (
		itemID string
		edge   string
		frame  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "trim <timeline>",
		Short: "Move the left or right edge of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := snap.Edge(edge)
			if e != snap.EdgeLeft && e != snap.EdgeRight {
				return errors.New(errors.ErrCodeInvalidInput, "--edge must be left or right, got %q", edge)
			}
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

			out, ok, err := ed.Trim(cmd.Context(), tl, placement.TrimRequest{ItemID: itemID, Edge: e, Frame: frame})
			if err != nil {
				return err
			}
			if !ok {
				printWarning("trim rejected: %s would fall below %d frames or nothing changed", itemID, cfg.MinDurationFrames)
				return nil
			}
			it, _, _ := out.Item(itemID)
			printSuccess("Trimmed %s to [%d, %d)", itemID, it.From, it.End())
			return writeResult(out, output)
		},
	}
	cmd.Flags().StringVar(&itemID, "item", "", "item to trim")
	cmd.Flags().StringVar(&edge, "edge", "", "edge to move: left or right")
	cmd.Flags().IntVar(&frame, "frame", 0, "target frame for the edge")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting timeline here (- for stdout)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("edge")
	_ = cmd.MarkFlagRequired("frame")
	return cmd
}
