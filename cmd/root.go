package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "repodash",
		Short: "GitHub organization repository dashboard",
		Long: `A CLI tool that collects metrics for every repository in a GitHub
organization and presents them as a sortable, filterable dashboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add board flags to root command so `repodash` and `repodash board` work identically
	addBoardFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdBoard(opts))
	rootCmd.AddCommand(NewCmdFetch(opts))
	rootCmd.AddCommand(NewCmdExport(opts))
	rootCmd.AddCommand(NewCmdStats(opts))
	rootCmd.AddCommand(NewCmdSnapshot(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
