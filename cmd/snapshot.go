package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repodash/repodash/internal/snapshot"
)

// NewCmdSnapshot creates the snapshot command with subcommands.
func NewCmdSnapshot(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage the local metrics snapshot",
	}

	cmd.PersistentFlags().StringVar(&opts.Data, "data", "", "Snapshot file path (default: user cache dir)")

	cmd.AddCommand(newCmdSnapshotClear(opts))
	cmd.AddCommand(newCmdSnapshotStats(opts))

	return cmd
}

// newCmdSnapshotClear creates the snapshot clear subcommand.
func newCmdSnapshotClear(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the local metrics snapshot",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSnapshotClear(opts)
		},
	}
}

// newCmdSnapshotStats creates the snapshot stats subcommand.
func newCmdSnapshotStats(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot metadata",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSnapshotStats(opts)
		},
	}
}

func runSnapshotClear(opts *Options) error {
	store, err := snapshot.NewStore(opts.Data)
	if err != nil {
		return fmt.Errorf("failed to access snapshot: %w", err)
	}

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println("Snapshot cleared.")
	return nil
}

func runSnapshotStats(opts *Options) error {
	store, err := snapshot.NewStore(opts.Data)
	if err != nil {
		return fmt.Errorf("failed to access snapshot: %w", err)
	}

	st, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot: %s\n", st.Path)
	if !st.Exists {
		fmt.Println("  No snapshot found. Run 'repodash fetch' to create one.")
		return nil
	}

	fmt.Printf("  Organization: %s\n", st.Org)
	fmt.Printf("  Repositories: %d\n", st.Repos)
	fmt.Printf("  Generated:    %s\n", st.GeneratedAt)
	if st.Stale {
		fmt.Printf("  Stale: older than %s, consider re-running 'repodash fetch'\n", snapshot.StaleAfter)
	}
	return nil
}
