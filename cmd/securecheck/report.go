package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/query"
)

func overviewCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show every stop with the headline metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := env.engine.Overview(cmd.Context())
			out := cmd.OutOrStdout()

			if err := display.RenderMetrics(out, resp.Summary.Metrics()); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return renderResult(out, resp.Table, resp.Notice)
		},
	}
}

func catalogCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the available catalog queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showSQL, _ := cmd.Flags().GetBool("sql")
			out := cmd.OutOrStdout()

			for _, e := range env.engine.Catalog() {
				fmt.Fprintf(out, "%2d  %-32s %s\n", int(e.ID), e.Slug, e.Label)
				if showSQL {
					fmt.Fprintf(out, "%s\n\n", e.SQL)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("sql", false, "Print the SQL text of each query")
	return cmd
}

func runCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <slug>",
		Short: "Run one catalog query",
		Long: `Run one catalog query and print its result table.

Example:
  securecheck run busiest-hour
  securecheck run top-drug-vehicles --source extract`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceFlag, _ := cmd.Flags().GetString("source")
			source, err := query.ParseSource(sourceFlag)
			if err != nil {
				return err
			}

			resp, err := env.engine.RunCatalog(cmd.Context(), args[0], source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n\n", resp.Entry.Label, resp.Source)
			return renderResult(out, resp.Table, resp.Notice)
		},
	}

	cmd.Flags().StringP("source", "s", string(query.SourceStore), "Where to evaluate the query (store, extract)")
	return cmd
}

func lookupCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <vehicle>",
		Short: "Describe every stop of matching vehicles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}

			resp := env.engine.Lookup(cmd.Context(), input)
			out := cmd.OutOrStdout()

			if err := display.RenderNotice(out, resp.Notice); err != nil {
				return err
			}
			for _, sentence := range resp.Descriptions {
				fmt.Fprintln(out, sentence)
			}
			return nil
		},
	}
}

// renderResult prints the notice, then the table unless it has no rows.
func renderResult(w io.Writer, t display.Table, notice *display.Notice) error {
	if err := display.RenderNotice(w, notice); err != nil {
		return err
	}
	if t.Empty() {
		return nil
	}
	return display.RenderTable(w, t)
}
