package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repodash/repodash/config"
	"github.com/repodash/repodash/internal/ghclient"
	"github.com/repodash/repodash/internal/log"
	"github.com/repodash/repodash/internal/snapshot"
)

// NewCmdFetch creates the fetch command.
func NewCmdFetch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Collect repository metrics from GitHub",
		Long: `Lists every repository in the organization, fetches per-repo counts
(collaborators, open issues and PRs, discussions, projects), and writes
the result to the local snapshot file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Org, "org", "", "GitHub organization (overrides config)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Snapshot file path (default: user cache dir)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Concurrent per-repo fetches (default from config)")
	cmd.Flags().BoolVar(&opts.IncludeArchived, "include-archived", false, "Include archived repositories")
	cmd.Flags().BoolVar(&opts.IncludeForks, "include-forks", false, "Include forked repositories")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	org := opts.Org
	if org == "" {
		org = cfg.Org
	}
	if org == "" {
		return fmt.Errorf("no organization configured. Pass --org or set 'org' in the config file")
	}

	token := cfg.GetGitHubToken()
	if token == "" {
		return fmt.Errorf("GitHub token not configured. Set the GITHUB_TOKEN environment variable")
	}

	client, err := ghclient.NewClient(ctx, token)
	if err != nil {
		return err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.GetFetchWorkers()
	}

	log.Info("collecting repository metrics", "org", org, "workers", workers)

	collector := ghclient.NewCollector(client)
	records, err := collector.Collect(ctx, org, ghclient.CollectOptions{
		ExcludeRepos:    cfg.ExcludeRepos,
		IncludeArchived: opts.IncludeArchived || cfg.IncludeArchived,
		IncludeForks:    opts.IncludeForks || cfg.IncludeForks(),
		Workers:         workers,
		OnProgress: func(done, total int) {
			log.Progress("Fetching repository counts: %d/%d...", done, total)
		},
	})
	log.ProgressDone()
	if err != nil && records == nil {
		return err
	}
	if err != nil {
		log.Warn("some repositories are missing counts", "error", err)
	}

	snap := snapshot.New(org)
	for _, r := range records {
		snap.Add(r)
	}

	store, err := snapshot.NewStore(opts.Data)
	if err != nil {
		return err
	}
	if err := store.Save(snap); err != nil {
		return err
	}

	fmt.Printf("Collected %d repositories for %s.\n", snap.Len(), org)
	fmt.Printf("Snapshot written to %s\n", store.Path())
	return nil
}
