package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewRankCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [file|-]",
		Short: "Rank sentences with TextRank",
		Long: `Score every sentence of the document with TextRank and mark the
sentences selected for the extractive summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeRankRunner(a),
	}

	f := cmd.Flags()
	f.IntP("sentences", "k", 0, "Sentences to select (default: k_extractive)")
	f.Float64("damping", 0, "Damping factor")
	f.Int("max-iter", 0, "Iteration cap")
	f.Float64("eps", 0, "Convergence tolerance")
	f.Float64("edge-threshold", 0, "Drop similarity edges at or below this weight")
	f.StringArray("stopword", nil, "Extra stopword (repeatable)")
	f.String("splitter", "", "Sentence splitter (heuristic|punkt)")
	f.String("text", "", "Rank this text instead of a file")
	return cmd
}

func makeRankRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		if !cmd.Flags().Changed("text") {
			name := internal.StdinName
			if len(args) > 0 {
				name = args[0]
			}
			var err error
			if text, err = a.readDocument(name); err != nil {
				return err
			}
		}

		scopeHint, _ := cmd.Flags().GetString("scope")
		k, _ := cmd.Flags().GetInt("sentences")

		out, err := a.rankUC().Execute(internal.RankInput{
			Text:      text,
			K:         k,
			Scope:     scopeHint,
			Configure: configureFromFlags(cmd),
		})
		if err != nil {
			return fmt.Errorf("rank: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), out)
		}

		selected := make(map[int]bool, len(out.Selected))
		for _, i := range out.Selected {
			selected[i] = true
		}

		w := cmd.OutOrStdout()
		for i, s := range out.Sentences {
			marker := " "
			if selected[i] {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %.4f  %s\n", marker, out.Scores[i], s)
		}
		if !out.Converged {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: not converged after %d iterations\n", out.Iterations)
		}
		return nil
	}
}
