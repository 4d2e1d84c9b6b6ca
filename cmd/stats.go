package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/log"
	"github.com/repodash/repodash/internal/snapshot"
	"github.com/repodash/repodash/internal/stats"
)

// NewCmdStats creates the stats command.
func NewCmdStats(opts *Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate metrics across the organization",
		Long: `Summarizes every numeric column of the snapshot: total, mean,
median, 90th percentile, and maximum. Filter flags narrow the
collection before aggregation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Keep repositories whose name contains this substring (case-sensitive)")
	cmd.Flags().StringSliceVarP(&opts.Licenses, "license", "l", nil, "Keep repositories with one of these licenses (\"all\" disables the filter)")
	cmd.Flags().StringVarP(&opts.Collaborators, "collaborators", "c", "", "Keep repositories whose collaborator count is in range")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Snapshot file path (default: user cache dir)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runStats(cmd *cobra.Command, opts *Options, asJSON bool) error {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := snapshot.NewStore(opts.Data)
	if err != nil {
		return err
	}
	snap, err := store.Load()
	if err != nil {
		return err
	}

	filter, _, err := buildGridState(opts, cfg)
	if err != nil {
		return err
	}

	summary, err := stats.Compute(grid.Apply(snap.Records(), filter, nil))
	if err != nil {
		return err
	}
	summary.Org = snap.Org

	if asJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s: %d repositories, %d licensed\n\n", summary.Org, summary.Repos, summary.Licensed)
	fmt.Printf("  %-14s  %8s  %8s  %8s  %8s  %8s\n", "Column", "Total", "Mean", "Median", "P90", "Max")
	for _, col := range summary.Columns {
		fmt.Printf("  %-14s  %8d  %8.1f  %8.1f  %8.1f  %8d\n",
			col.Column, col.Total, col.Mean, col.Median, col.P90, col.Max)
	}
	return nil
}
