package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/api"
	"github.com/matzehuels/cliptower/pkg/mcpserver"
	"github.com/matzehuels/cliptower/pkg/store"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			ed, err := c.newEditor(ctx, cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			var st store.Store
			if !noStore {
				if st, err = c.openStore(ctx, cfg); err != nil {
					return err
				}
				defer st.Close()
				c.Logger.Info("document store ready", "backend", cfg.Store.Backend)
			}

			return api.New(ed, st, newRenderer(ed), c.Logger).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "serve only the stateless endpoints")
	return cmd
}

// mcpCommand creates the "mcp" command.
func (c *CLI) mcpCommand() *cobra.Command {
	var noStore bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the placement engine as MCP tools over stdio",
		Long:  `Run a Model Context Protocol server on stdin and stdout. Logs go to stderr so they do not corrupt the protocol stream.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ed, err := c.newEditor(ctx, cfg)
			if err != nil {
				return err
			}
			defer ed.Close()

			var st store.Store
			if !noStore {
				if st, err = c.openStore(ctx, cfg); err != nil {
					return err
				}
				defer st.Close()
			}
			return mcpserver.New(ed, st, c.Logger).ServeStdio(ctx)
		},
	}
	cmd.Flags().BoolVar(&noStore, "no-store", false, "register only the stateless tools")
	return cmd
}
