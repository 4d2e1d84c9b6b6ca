package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/repodash/repodash/config"
	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/log"
	"github.com/repodash/repodash/internal/output"
	"github.com/repodash/repodash/internal/snapshot"
	"github.com/repodash/repodash/internal/tui"
)

// NewCmdBoard creates the board command.
func NewCmdBoard(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the repository dashboard (same as root repodash)",
		Long: `Loads the repository snapshot and displays it as a sortable,
filterable grid. In a terminal this opens an interactive view; otherwise
it prints the selected output format.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd, opts)
		},
	}

	addBoardFlags(cmd, opts)
	return cmd
}

// addBoardFlags adds the board-specific flags to a command.
func addBoardFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown, html)")
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "Sort spec: comma-separated columns, \"-\" prefix for descending (e.g. -collaborators,name)")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Keep repositories whose name contains this substring (case-sensitive)")
	cmd.Flags().StringSliceVarP(&opts.Licenses, "license", "l", nil, "Keep repositories with one of these licenses (\"all\" disables the filter)")
	cmd.Flags().StringVarP(&opts.Collaborators, "collaborators", "c", "", "Keep repositories whose collaborator count is in range (e.g. 5:10, 5:, :10)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Snapshot file path (default: user cache dir)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable the interactive grid (default: auto-detect)")
}

func runBoard(cmd *cobra.Command, opts *Options) error {
	// Suppress logs during TUI to avoid interleaving with the display
	if shouldUseTUI(opts) {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}

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

	filter, sortState, err := buildGridState(opts, cfg)
	if err != nil {
		return err
	}

	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(cfg.DefaultFormat)
	}

	records := snap.Records()

	// If running in a TTY with table format, launch the interactive grid
	if shouldUseTUI(opts) && (format == "" || format == output.FormatTable) {
		return tui.RunGridUI(records, snap.Org, tui.WithFilter(filter), tui.WithSort(sortState))
	}

	formatter, err := output.NewFormatter(format, snapshotMeta(snap))
	if err != nil {
		return err
	}
	return formatter.Format(grid.Apply(records, filter, sortState), os.Stdout)
}

// loadConfig loads the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildGridState parses the sort and filter flags, falling back to the
// configured default sort when --sort is not given.
func buildGridState(opts *Options, cfg *config.Config) (grid.Filter, grid.SortState, error) {
	sortSpec := opts.Sort
	if sortSpec == "" {
		sortSpec = cfg.DefaultSort
	}
	sortState, err := grid.ParseSortSpec(sortSpec)
	if err != nil {
		return grid.Filter{}, nil, err
	}

	filter := grid.Filter{
		Name:     opts.Name,
		Licenses: opts.Licenses,
	}
	if opts.Collaborators != "" {
		r, err := grid.ParseRange(opts.Collaborators)
		if err != nil {
			return grid.Filter{}, nil, err
		}
		filter.Collaborators = r
	}

	return filter, sortState, nil
}

// snapshotMeta extracts the formatter metadata from a snapshot.
func snapshotMeta(snap *snapshot.Snapshot) output.Meta {
	return output.Meta{
		Org:         snap.Org,
		GeneratedAt: snap.GeneratedAt.Format("2006-01-02 15:04 MST"),
	}
}
