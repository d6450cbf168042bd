package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

func NewSummarizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file|-]",
		Short: "Summarize a document",
		Long: `Split the document into sentences, rank them with TextRank, ask the
configured LLM provider for an abstractive summary and merge both into a
final summary. Reads stdin when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeSummarizeRunner(a),
	}

	f := cmd.Flags()
	f.String("mode", "", "Summary mode (hybrid|textrank|llm)")
	f.IntP("sentences", "k", 0, "Sentences in the final summary")
	f.Int("extractive", 0, "Sentences selected by TextRank")
	f.Int("llm-sentences", 0, "Target sentences requested from the LLM")
	f.String("provider", "", "Provider name (default: configured default)")
	f.Float64("damping", 0, "TextRank damping factor")
	f.Int("max-iter", 0, "TextRank iteration cap")
	f.Float64("eps", 0, "TextRank convergence tolerance")
	f.Float64("edge-threshold", 0, "Drop similarity edges at or below this weight")
	f.Float64("redundancy", 0, "Redundancy threshold for merging")
	f.Bool("prefer-extractive", true, "Anchor the final summary with extractive sentences")
	f.Int("max-abstractive", 0, "Cap on abstractive sentences considered for merging")
	f.StringArray("stopword", nil, "Extra stopword (repeatable)")
	f.String("splitter", "", "Sentence splitter (heuristic|punkt)")
	f.Bool("strict", false, "Fail instead of falling back when the LLM fails")
	f.Bool("stats", false, "Print summary metrics")
	f.Bool("watch", false, "Re-summarize whenever the file or directory changes")
	f.String("text", "", "Summarize this text instead of a file")
	f.Duration("debounce", defaultDebounce, "Debounce window for --watch")
	return cmd
}

func makeSummarizeRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name := internal.StdinName
		if len(args) > 0 {
			name = args[0]
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			if name == internal.StdinName || cmd.Flags().Changed("text") {
				return fmt.Errorf("--watch needs a file or directory")
			}
			return runWatch(cmd, a, name)
		}

		text, _ := cmd.Flags().GetString("text")
		if !cmd.Flags().Changed("text") {
			var err error
			text, err = a.readDocument(name)
			if err != nil {
				return err
			}
		}

		out, err := summarize(cmd, a, text)
		if err != nil {
			return err
		}
		return printSummary(cmd, out)
	}
}

func summarize(cmd *cobra.Command, a *app, text string) (*internal.SummarizeOutput, error) {
	scopeHint, _ := cmd.Flags().GetString("scope")
	provider, _ := cmd.Flags().GetString("provider")
	stats, _ := cmd.Flags().GetBool("stats")

	out, err := a.summarizeUC().Execute(cmd.Context(), internal.SummarizeInput{
		Text:      text,
		Scope:     scopeHint,
		Provider:  provider,
		Configure: configureFromFlags(cmd),
		Stats:     stats,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return out, nil
}

// configureFromFlags overrides config values with the flags set on cmd.
func configureFromFlags(cmd *cobra.Command) func(*internal.Config) {
	f := cmd.Flags()
	return func(c *internal.Config) {
		if f.Changed("mode") {
			c.Summary.Mode, _ = f.GetString("mode")
		}
		if f.Changed("sentences") {
			c.Summary.KFinal, _ = f.GetInt("sentences")
		}
		if f.Changed("extractive") {
			c.Summary.KExtractive, _ = f.GetInt("extractive")
		}
		if f.Changed("llm-sentences") {
			c.Summary.LLMTargetSentences, _ = f.GetInt("llm-sentences")
		}
		if f.Changed("splitter") {
			c.Summary.Splitter, _ = f.GetString("splitter")
		}
		if f.Changed("stopword") {
			extra, _ := f.GetStringArray("stopword")
			c.Summary.Stopwords = append(c.Summary.Stopwords, extra...)
		}
		if f.Changed("strict") {
			c.Summary.Strict, _ = f.GetBool("strict")
		}
		if f.Changed("damping") {
			c.TextRank.Damping, _ = f.GetFloat64("damping")
		}
		if f.Changed("max-iter") {
			c.TextRank.MaxIter, _ = f.GetInt("max-iter")
		}
		if f.Changed("eps") {
			c.TextRank.Eps, _ = f.GetFloat64("eps")
		}
		if f.Changed("edge-threshold") {
			c.TextRank.EdgeThreshold, _ = f.GetFloat64("edge-threshold")
		}
		if f.Changed("redundancy") {
			c.Merge.RedundancyThreshold, _ = f.GetFloat64("redundancy")
		}
		if f.Changed("prefer-extractive") {
			c.Merge.PreferExtractive, _ = f.GetBool("prefer-extractive")
		}
		if f.Changed("max-abstractive") {
			c.Merge.MaxAbstractiveSentences, _ = f.GetInt("max-abstractive")
		}
	}
}

func printSummary(cmd *cobra.Command, out *internal.SummarizeOutput) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	if len(out.Final) == 0 {
		fmt.Fprintln(w, "No summary.")
		return nil
	}
	for _, s := range out.Final {
		fmt.Fprintln(w, s)
	}

	if out.Degraded {
		fmt.Fprintln(cmd.ErrOrStderr(), "note: LLM summary unavailable, showing extractive summary")
	}

	if out.Metrics != nil {
		m := out.Metrics
		fmt.Fprintf(w, "\nwords: %d  sentences: %d  redundancy: %.3f  coverage: %.3f\n",
			m.WordCount, m.SentenceCount, m.Redundancy, m.Coverage)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
