package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge an extractive and an abstractive summary",
		Long: `Combine extractive sentences (one per line) with an abstractive summary
into a final summary of k non-redundant sentences.`,
		Args: cobra.NoArgs,
		RunE: makeMergeRunner(a),
	}

	f := cmd.Flags()
	f.String("extractive-file", "", "File with one extractive sentence per line")
	f.String("abstractive-file", "", "File with the abstractive summary")
	f.IntP("sentences", "k", 0, "Sentences in the final summary (default: k_final)")
	f.Float64("redundancy", 0, "Redundancy threshold")
	f.Bool("prefer-extractive", true, "Anchor the result with extractive sentences")
	f.Int("max-abstractive", 0, "Cap on abstractive sentences considered")
	f.StringArray("stopword", nil, "Extra stopword (repeatable)")
	f.String("splitter", "", "Sentence splitter for the abstractive text (heuristic|punkt)")
	return cmd
}

func makeMergeRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		extractiveFile, _ := cmd.Flags().GetString("extractive-file")
		abstractiveFile, _ := cmd.Flags().GetString("abstractive-file")
		if extractiveFile == "" && abstractiveFile == "" {
			return fmt.Errorf("merge: need --extractive-file or --abstractive-file")
		}
		if extractiveFile == internal.StdinName && abstractiveFile == internal.StdinName {
			return fmt.Errorf("merge: only one input can be read from stdin")
		}

		var extractive []string
		if extractiveFile != "" {
			src, name, err := a.document(extractiveFile)
			if err != nil {
				return err
			}
			if extractive, err = src.Lines(name); err != nil {
				return err
			}
		}

		var abstractive string
		if abstractiveFile != "" {
			var err error
			if abstractive, err = a.readDocument(abstractiveFile); err != nil {
				return err
			}
		}

		scopeHint, _ := cmd.Flags().GetString("scope")
		k, _ := cmd.Flags().GetInt("sentences")

		final, err := a.mergeUC().Execute(internal.MergeInput{
			Extractive:  extractive,
			Abstractive: abstractive,
			K:           k,
			Scope:       scopeHint,
			Configure:   configureFromFlags(cmd),
		})
		if err != nil {
			return fmt.Errorf("merge: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), final)
		}
		for _, s := range final {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	}
}
