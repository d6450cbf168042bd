package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewProviderCmd(
	listUC *internal.ProviderListUseCase,
	addUC *internal.ProviderAddUseCase,
	removeUC *internal.ProviderRemoveUseCase,
	setDefUC *internal.ProviderSetDefaultUseCase,
	testUC *internal.ProviderTestUseCase,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage LLM providers",
		Long:  `List, add, remove and test the LLM providers used for abstractive summaries.`,
	}

	cmd.AddCommand(
		newProviderListCmd(listUC),
		newProviderAddCmd(addUC),
		providerNameCmd("remove <name>", "Remove a provider", removeUC.Execute, "Removed provider %s\n"),
		providerNameCmd("default <name>", "Set default provider", setDefUC.Execute, "Default provider set to %s\n"),
		newProviderTestCmd(testUC),
	)

	return cmd
}

func newProviderListCmd(listUC *internal.ProviderListUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scopeHint, _ := cmd.Flags().GetString("scope")
			entries, err := listUC.Execute(internal.ProviderInput{Scope: scopeHint})
			if err != nil {
				return fmt.Errorf("list providers: %w", err)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers configured.")
				return nil
			}

			for _, e := range entries {
				marker := " "
				if e.Default {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", marker, e.Name, e.Type, e.Model)
			}
			return nil
		},
	}
}

func newProviderAddCmd(addUC *internal.ProviderAddUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a provider",
		Example: `  hsum provider add openai --api-key sk-... --model gpt-4o-mini
  hsum provider add metis --type openai --base-url https://api.metisai.ir/openai/v1 --api-key ... --model gpt-4o-mini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			scopeHint, _ := f.GetString("scope")

			var pc internal.ProviderConfig
			pc.Type, _ = f.GetString("type")
			pc.APIKey, _ = f.GetString("api-key")
			pc.BaseURL, _ = f.GetString("base-url")
			pc.Model, _ = f.GetString("model")

			if err := addUC.Execute(internal.ProviderInput{Name: args[0], Scope: scopeHint, Config: pc}); err != nil {
				return fmt.Errorf("add provider: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added provider %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("type", "", "Backend type (openai|anthropic|openrouter); defaults to the name")
	cmd.Flags().String("api-key", "", "API key (or set HSUM_API_KEY)")
	cmd.Flags().String("base-url", "", "Base URL of an OpenAI-compatible endpoint")
	cmd.Flags().String("model", "", "Model name")
	return cmd
}

// providerNameCmd builds a subcommand that applies run to a single
// provider name and reports done on success.
func providerNameCmd(use, short string, run func(internal.ProviderInput) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeHint, _ := cmd.Flags().GetString("scope")
			if err := run(internal.ProviderInput{Name: args[0], Scope: scopeHint}); err != nil {
				return fmt.Errorf("%s: %w", cmd.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), done, args[0])
			return nil
		},
	}
}

func newProviderTestCmd(testUC *internal.ProviderTestUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "test [name]",
		Short: "Test provider connectivity",
		Long:  `Send a short prompt to the named provider, or the default one.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			scopeHint, _ := cmd.Flags().GetString("scope")

			if err := testUC.Execute(cmd.Context(), internal.ProviderInput{Name: name, Scope: scopeHint}); err != nil {
				return fmt.Errorf("test provider: %w", err)
			}

			if name == "" {
				name = "(default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provider %s is working\n", name)
			return nil
		},
	}
}
