package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// readTimeline loads a timeline file, or stdin for "-".
func readTimeline(path string) (*timeline.Timeline, error) {
	if path == "-" {
		return tlio.ReadTimeline(os.Stdin, tlio.FormatJSON)
	}
	return tlio.ImportTimeline(path)
}

// writeResult writes tl to output ("-" for stdout) or, with no output,
// prints it as a table.
func writeResult(tl *timeline.Timeline, output string) error {
	switch output {
	case "":
		fmt.Println(timelineTable(tl))
		return nil
	case "-":
		return tlio.WriteTimeline(tl, os.Stdout, tlio.FormatJSON)
	}
	if err := tlio.ExportTimeline(tl, output); err != nil {
		return err
	}
	printFile(output)
	return nil
}

// inspectCommand creates the "inspect" command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <timeline>",
		Short: "Show the tracks and items of a timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := readTimeline(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return tlio.WriteTimeline(tl, os.Stdout, tlio.FormatJSON)
			}
			fmt.Println(StyleTitle.Render(args[0]))
			printStats(tl, false)
			if tl.FPS > 0 {
				printKeyValue("fps", fmt.Sprint(tl.FPS))
			}
			printKeyValue("playhead", fmt.Sprint(tl.CurrentFrame))
			fmt.Println(timelineTable(tl))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized JSON document instead of a table")
	return cmd
}

// validateCommand creates the "validate" command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <timeline>...",
		Short: "Check timelines for overlaps, bad frames and duplicate ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				tl, err := readTimeline(path)
				if err != nil {
					printError("%s: %v", path, err)
					failed++
					continue
				}
				printSuccess("%s", path)
				printStats(tl, false)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d timelines invalid", failed, len(args))
			}
			return nil
		},
	}
}
