package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/4thel00z/hybridsum/internal"
)

func TestSummarizeCmdTextRank(t *testing.T) {
	a, dir := setupCLI(t, "")
	path := writeFile(t, dir, "doc.txt", medicalDoc)

	out, _, err := execute(t, a, "summarize", path, "--mode", "textrank", "-k", "2")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	want := "AI helps diagnose disease early\nEarly diagnosis improves outcomes\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestSummarizeCmdHybrid(t *testing.T) {
	a, dir := setupCLI(t, "Wearable sensors track vital signs.")
	writeFile(t, dir, "doc.txt", medicalDoc)

	out, errOut, err := execute(t, a, "summarize", "doc.txt", "--extractive", "2", "-k", "3")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 sentences, got %q", out)
	}
	if lines[2] != "Wearable sensors track vital signs" {
		t.Errorf("expected abstractive sentence last, got %q", lines[2])
	}
	if strings.Contains(errOut, "note:") {
		t.Errorf("unexpected degraded note: %q", errOut)
	}
}

func TestSummarizeCmdDegradesWithoutProvider(t *testing.T) {
	a, _ := setupCLI(t, "")

	out, errOut, err := execute(t, a, "summarize", "--text", medicalDoc)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(errOut, "LLM summary unavailable") {
		t.Errorf("expected degraded note, got %q", errOut)
	}
	if !strings.Contains(out, "AI helps diagnose disease early") {
		t.Errorf("expected extractive output, got %q", out)
	}
}

func TestSummarizeCmdStrictWithoutProvider(t *testing.T) {
	a, _ := setupCLI(t, "")

	_, _, err := execute(t, a, "summarize", "--text", medicalDoc, "--strict")
	if err == nil {
		t.Fatal("expected error in strict mode without a provider")
	}
}

func TestSummarizeCmdStdin(t *testing.T) {
	a, _ := setupCLI(t, "")
	a.stdin = strings.NewReader(medicalDoc)

	out, _, err := execute(t, a, "summarize", "-", "--mode", "textrank", "-k", "1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out != "AI helps diagnose disease early\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSummarizeCmdJSONAndStats(t *testing.T) {
	a, _ := setupCLI(t, "")

	out, _, err := execute(t, a, "--json", "summarize", "--text", medicalDoc, "--mode", "textrank", "-k", "2", "--stats")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	var got struct {
		RunID   string   `json:"run_id"`
		Mode    string   `json:"mode"`
		Final   []string `json:"final"`
		Metrics struct {
			SentenceCount int     `json:"sentence_count"`
			Coverage      float64 `json:"coverage"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}

	if got.RunID == "" || got.Mode != internal.ModeTextRank {
		t.Errorf("unexpected header: %+v", got)
	}
	if len(got.Final) != 2 || got.Metrics.SentenceCount != 2 {
		t.Errorf("unexpected result: %+v", got)
	}
	if got.Metrics.Coverage != 1 {
		t.Errorf("extractive summary must be fully covered, got %v", got.Metrics.Coverage)
	}
}

func TestSummarizeCmdStatsText(t *testing.T) {
	a, _ := setupCLI(t, "")

	out, _, err := execute(t, a, "summarize", "--text", medicalDoc, "--mode", "textrank", "--stats")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(out, "sentences: 4") || !strings.Contains(out, "coverage: 1.000") {
		t.Errorf("expected stats line, got %q", out)
	}
}

func TestSummarizeCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty document", []string{"summarize", "--text", "   "}},
		{"missing file", []string{"summarize", "nope.txt"}},
		{"invalid damping", []string{"summarize", "--text", medicalDoc, "--damping", "1.5"}},
		{"unknown mode", []string{"summarize", "--text", medicalDoc, "--mode", "magic"}},
		{"unknown splitter", []string{"summarize", "--text", medicalDoc, "--splitter", "nltk"}},
		{"watch stdin", []string{"summarize", "--watch"}},
		{"too many args", []string{"summarize", "a.txt", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := setupCLI(t, "")
			if _, _, err := execute(t, a, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestSummarizeCmdStopwordFlag(t *testing.T) {
	a, _ := setupCLI(t, "")

	out, _, err := execute(t, a, "summarize", "--text", medicalDoc, "--mode", "textrank", "-k", "4", "--stopword", "early")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if strings.Count(out, "\n") != 4 {
		t.Errorf("expected all four sentences, got %q", out)
	}
}
