package cmd

import (
	"fmt"
	"time"

	"github.com/genum-ai/genum/internal/cli"
	"github.com/genum-ai/genum/internal/provider"
	"github.com/genum-ai/genum/internal/usage"
	"github.com/spf13/cobra"
)

type usageFlags struct {
	vendor string
	model  string
	since  time.Duration
	limit  int
}

func (f usageFlags) filter(now time.Time) usage.Filter {
	filter := usage.Filter{
		Vendor: provider.Vendor(f.vendor),
		Model:  f.model,
		Limit:  f.limit,
	}
	if f.since > 0 {
		filter.Since = now.Add(-f.since)
	}
	return filter
}

// NewUsageCmd creates the command that reports the usage ledger
func NewUsageCmd(container *cli.Container) *cobra.Command {
	f := &usageFlags{}

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Summarize tokens and cost per vendor and model",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := container.Store.Summary(cmd.Context(), f.filter(time.Now()))
			if err != nil {
				return fmt.Errorf("failed to summarize usage: %w", err)
			}

			if len(rows) == 0 {
				container.ThemeMgr.GetCurrentTheme().Warning().Println("No runs recorded yet.")
				return nil
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					string(r.Vendor),
					r.Model,
					fmt.Sprint(r.Runs),
					fmt.Sprint(r.Failures),
					fmt.Sprint(r.Tokens.Prompt),
					fmt.Sprint(r.Tokens.Completion),
					fmt.Sprint(r.Tokens.Total),
					fmt.Sprintf("%.6f", r.Cost.Total),
				})
			}

			container.ThemeMgr.RenderTable(cmd.OutOrStdout(),
				[]string{"Vendor", "Model", "Runs", "Failed", "Prompt", "Completion", "Total", "Cost (USD)"},
				table,
			)
			return nil
		},
	}

	addUsageFlags(cmd, f)
	cmd.AddCommand(newUsageRunsCmd(container))
	return cmd
}

func newUsageRunsCmd(container *cli.Container) *cobra.Command {
	f := &usageFlags{limit: 20}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.Store.List(cmd.Context(), f.filter(time.Now()))
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			table := make([][]string, 0, len(records))
			for _, r := range records {
				status := "ok"
				if r.Failed() {
					status = "error"
				}
				table = append(table, []string{
					r.CreatedAt.Local().Format(time.DateTime),
					string(r.Vendor),
					r.Model,
					status,
					fmt.Sprint(r.Tokens.Total),
					fmt.Sprintf("%.6f", r.Cost.Total),
					fmt.Sprintf("%d", r.ResponseTimeMs),
				})
			}

			container.ThemeMgr.RenderTable(cmd.OutOrStdout(),
				[]string{"Time", "Vendor", "Model", "Status", "Tokens", "Cost (USD)", "ms"},
				table,
			)
			return nil
		},
	}

	addUsageFlags(cmd, f)
	cmd.Flags().IntVar(&f.limit, "limit", f.limit, "Maximum number of runs to list")
	return cmd
}

func addUsageFlags(cmd *cobra.Command, f *usageFlags) {
	cmd.Flags().StringVarP(&f.vendor, "vendor", "v", "", "Only include this vendor")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Only include this model")
	cmd.Flags().DurationVar(&f.since, "since", 0, "Only include runs newer than this, e.g. 24h")
}
