package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hsum",
		Short:         "Hybrid extractive and abstractive summarizer",
		Long:          `Summarize documents by merging a TextRank extract with an LLM summary.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	resolver := internal.NewScopeResolver()
	if a != nil {
		resolver = a.resolver
	}
	setHelpWithExternals(rootCmd, resolver)

	if a != nil {
		rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		}
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("scope", "", "Target scope (global|project)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewInitCmd(a.resolver),
		NewSummarizeCmd(a),
		NewRankCmd(a),
		NewMergeCmd(a),
		NewProviderCmd(
			internal.NewProviderListUseCase(a.resolver),
			internal.NewProviderAddUseCase(a.resolver),
			internal.NewProviderRemoveUseCase(a.resolver),
			internal.NewProviderSetDefaultUseCase(a.resolver),
			a.providerTestUC(),
		),
	)
}

func setHelpWithExternals(cmd *cobra.Command, resolver *internal.ScopeResolver) {
	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		printExternalCommands(c, resolver)
	})
}

func printExternalCommands(cmd *cobra.Command, resolver *internal.ScopeResolver) {
	externals := listExternalCommands(resolver)
	if len(externals) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nExternal commands (hsum-*):")
	for _, name := range externals {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
