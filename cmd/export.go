package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repodash/repodash/internal/grid"
	"github.com/repodash/repodash/internal/log"
	"github.com/repodash/repodash/internal/output"
	"github.com/repodash/repodash/internal/snapshot"
)

// NewCmdExport creates the export command.
func NewCmdExport(opts *Options) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard as a static HTML page",
		Long: `Renders the current snapshot as a self-contained HTML page suitable
for publishing. Sort and filter flags apply the same way as on the board.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts, outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "O", "index.html", "Output file path")
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "Sort spec: comma-separated columns, \"-\" prefix for descending")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Keep repositories whose name contains this substring (case-sensitive)")
	cmd.Flags().StringSliceVarP(&opts.Licenses, "license", "l", nil, "Keep repositories with one of these licenses (\"all\" disables the filter)")
	cmd.Flags().StringVarP(&opts.Collaborators, "collaborators", "c", "", "Keep repositories whose collaborator count is in range")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Snapshot file path (default: user cache dir)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *Options, outPath string) error {
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

	filter, sortState, err := buildGridState(opts, cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	formatter := &output.HTMLFormatter{Meta: snapshotMeta(snap)}
	if err := formatter.Format(grid.Apply(snap.Records(), filter, sortState), f); err != nil {
		return err
	}

	fmt.Printf("Exported %s\n", outPath)
	return nil
}
