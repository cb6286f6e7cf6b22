package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yumyai/panres/pkg/db"
	"github.com/yumyai/panres/pkg/explorer"
	"github.com/yumyai/panres/pkg/tui"
)

var (
	browseLocal  bool
	browseServer string
	browseRPS    float64
	treeDepth    int
)

func init() {
	for _, c := range []*cobra.Command{browseCmd, treeCmd, showCmd} {
		c.Flags().BoolVar(&browseLocal, "local", false, "read the store directly instead of the API")
		c.Flags().StringVar(&browseServer, "server", "", "API base URL (overrides config)")
		c.Flags().Float64Var(&browseRPS, "rps", 10, "client request rate limit, 0 for none")
		rootCmd.AddCommand(c)
	}
	treeCmd.Flags().IntVar(&treeDepth, "depth", 1, "class levels to expand below the roots")
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Explore the hierarchy in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, done, err := openBrowser()
		if err != nil {
			return err
		}
		defer done()
		return tui.Run(cmd.Context(), b)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the class hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, done, err := openBrowser()
		if err != nil {
			return err
		}
		defer done()

		roots, err := b.Start(cmd.Context())
		if err != nil {
			return err
		}
		expandTo(cmd.Context(), b.Explorer, roots, treeDepth)
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderTree(b.Explorer.Visible()))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the details of one node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, done, err := openBrowser()
		if err != nil {
			return err
		}
		defer done()

		view, err := b.RevealAndSelect(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%s", b.Panel.Current().ErrorMessage())
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetail(view))
		return nil
	},
}

// openBrowser builds a session over the API, or over the store with --local.
func openBrowser() (*explorer.Browser, func(), error) {
	if browseLocal {
		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return explorer.NewBrowser(&explorer.LocalSource{DB: store.SQL()}), func() { store.Close() }, nil
	}
	client := explorer.NewClient(orDefault(browseServer, cfg.ServerURL), explorer.WithRateLimit(browseRPS))
	return explorer.NewBrowser(client), func() {}, nil
}

// expandTo opens classes down to depth levels below nodes. Failed
// expansions stay in the tree as error rows.
func expandTo(ctx context.Context, ex *explorer.Explorer, nodes []*explorer.TreeNode, depth int) {
	if depth <= 0 {
		return
	}
	for _, n := range nodes {
		if !n.Expandable() {
			continue
		}
		children, err := ex.Expand(ctx, n)
		if err != nil {
			continue
		}
		expandTo(ctx, ex, children, depth-1)
	}
}
