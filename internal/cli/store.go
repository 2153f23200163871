package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/store"
)

// storeCommand creates the document store command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored timeline documents",
	}
	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := c.openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	var id, name string
	cmd := &cobra.Command{
		Use:   "save <timeline>",
		Short: "Store a timeline file as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := readTimeline(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}
			return c.withStore(cmd, func(st store.Store) error {
				doc := &store.Document{ID: id, Name: name, Timeline: tl}
				if err := st.Save(cmd.Context(), doc); err != nil {
					return err
				}
				printSuccess("Saved %s", StyleHighlight.Render(doc.ID))
				printDetail("%s · %d tracks · %d items", doc.Name, len(tl.Tracks), tl.ItemCount())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "document id to replace (default: new id)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: file name)")
	return cmd
}

func (c *CLI) storeLoadCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Print or export a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				doc, err := st.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					fmt.Println(StyleTitle.Render(doc.Name))
					printDetail("updated %s", doc.UpdatedAt.Local().Format("Jan 2 15:04"))
				}
				return writeResult(doc.Timeline, output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export the timeline here (- for stdout)")
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				list, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No stored documents")
					return nil
				}
				fmt.Println(summaryTable(list))
				return nil
			})
		},
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete stored documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						return err
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}

func summaryTable(list []store.Summary) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.ID, s.Name, strconv.Itoa(s.Tracks), strconv.Itoa(s.Items), s.UpdatedAt.Local().Format("2006-01-02 15:04")}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Tracks", "Items", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleDim
			case col == 2 || col == 3:
				return StyleValue.Align(lipgloss.Right)
			}
			return StyleValue
		}).
		Render()
}
