package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewInitCmd(resolver *internal.ScopeResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a config scope",
		Long:  `Create a .hsum directory holding config.yaml with default settings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, resolver)
		},
	}

	cmd.Flags().Bool("global", false, "Initialize global scope (~/.hsum)")
	return cmd
}

func runInit(cmd *cobra.Command, resolver *internal.ScopeResolver) error {
	isGlobal, _ := cmd.Flags().GetBool("global")

	var scope internal.Scope
	if isGlobal {
		scope = resolver.Global()
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		scope = resolver.ProjectAt(cwd)
	}

	if _, err := os.Stat(scope.ConfigPath()); err == nil {
		return fmt.Errorf("already initialized at %s", scope.DataPath)
	}

	if err := os.MkdirAll(scope.DataPath, 0755); err != nil {
		return fmt.Errorf("create %s: %w", scope.DataPath, err)
	}

	if err := internal.SaveConfig(scope, internal.DefaultConfig()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized hsum config at %s\n", scope.ConfigPath())
	return nil
}
