package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/render/dot"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output    string // output file; derived from the input when empty
	format    string // dot, svg or png
	detailed  bool   // payload details in item labels
	highlight string // item id drawn with a thick outline
	script    string // drag script whose last preview is overlaid
}

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: string(dot.FormatSVG)}

	cmd := &cobra.Command{
		Use:   "render <timeline>",
		Short: "Render a timeline as a Graphviz diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png or dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show payload details in item labels")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "item id to outline")
	cmd.Flags().StringVar(&opts.script, "script", "", "overlay the final preview of this drag script")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	f, err := dot.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	tl, err := readTimeline(path)
	if err != nil {
		return err
	}
	ed, err := c.newEditor(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer ed.Close()

	dotOpts := dot.Options{Detailed: opts.detailed, Highlight: opts.highlight}
	if opts.script != "" {
		sc, err := tlio.ImportScript(opts.script)
		if err != nil {
			return err
		}
		d, err := sc.Drag(tl)
		if err != nil {
			return err
		}
		pv := ed.Preview(cmd.Context(), tl, d, sc.Events[len(sc.Events)-1])
		dotOpts.Preview = &pv
		if dotOpts.Highlight == "" && d.OriginalTrackID != "" {
			dotOpts.Highlight = d.Item.ID
		}
	}

	spin := newSpinner(cmd.Context(), "Rendering "+string(f))
	spin.Start()
	data, cached, err := newRenderer(ed).RenderWithCacheInfo(cmd.Context(), tl, f, dotOpts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(f)
		if path == "-" {
			out = "-"
		}
	}
	if out == "-" {
		spin.Stop()
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		spin.StopWithError("Write failed")
		return err
	}
	spin.StopWithSuccess("Rendered " + string(f))
	printStats(tl, cached)
	printFile(out)
	return nil
}
