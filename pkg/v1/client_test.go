package v1

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var medical = []string{
	"AI helps diagnose disease early",
	"Early diagnosis improves outcomes",
	"Machine learning detects patterns in medical data",
	"It is raining today and traffic is heavy",
}

const medicalDoc = "AI helps diagnose disease early. Early diagnosis improves outcomes. " +
	"Machine learning detects patterns in medical data. It is raining today and traffic is heavy."

type staticSummarizer struct {
	text string
	err  error
}

func (s staticSummarizer) Summarize(context.Context, string, int) (string, error) {
	return s.text, s.err
}

func setupClientTest(t *testing.T, opts ...Option) *Client {
	t.Helper()
	t.Chdir(t.TempDir())

	client, err := New(append([]Option{WithHome(t.TempDir())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientSummarizeTextRank(t *testing.T) {
	client := setupClientTest(t, WithMode("textrank"), WithSentences(2))

	got, err := client.Summarize(context.Background(), medicalDoc)
	require.NoError(t, err)

	assert.Equal(t, medical[:2], got.Final)
	assert.Equal(t, medical, got.Sentences)
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, 2, got.Metrics.SentenceCount)
	assert.InDelta(t, 1.0, got.Metrics.Coverage, 1e-12)
}

func TestClientSummarizeHybrid(t *testing.T) {
	client := setupClientTest(t,
		WithSummarizer(staticSummarizer{text: "Wearable sensors track vital signs."}),
		WithSentences(6),
	)

	got, err := client.Summarize(context.Background(), medicalDoc)
	require.NoError(t, err)

	assert.False(t, got.Degraded)
	assert.Equal(t, "Wearable sensors track vital signs.", got.Abstractive)
	assert.Contains(t, got.Final, "Wearable sensors track vital signs")
	assert.Len(t, got.Final, 5)
}

func TestClientSummarizeDegrades(t *testing.T) {
	client := setupClientTest(t, WithSummarizer(staticSummarizer{err: errors.New("offline")}))

	got, err := client.Summarize(context.Background(), medicalDoc)
	require.NoError(t, err)
	assert.True(t, got.Degraded)
	assert.Equal(t, medical, got.Final)
}

func TestClientSummarizeEmpty(t *testing.T) {
	client := setupClientTest(t)

	_, err := client.Summarize(context.Background(), " ")
	assert.Error(t, err)
}

func TestClientRank(t *testing.T) {
	client := setupClientTest(t)

	got, err := client.Rank(medical, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got.Selected)
	assert.Equal(t, medical[:2], got.Summary)
	assert.Len(t, got.Scores, 4)
	assert.True(t, got.Converged)

	got, err = client.Rank(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got.Summary)
}

func TestClientMerge(t *testing.T) {
	client := setupClientTest(t)

	got, err := client.Merge([]string{"X", "Y"}, "X. X. Y. Z.", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, got)
}

func TestClientInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hsum"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hsum", "config.yaml"),
		[]byte("textrank:\n  damping: 3\n"), 0600))

	_, err := New(WithHome(t.TempDir()))
	assert.Error(t, err)

	t.Chdir(t.TempDir())
	_, err = New(WithHome(t.TempDir()), WithMode("bogus"))
	assert.Error(t, err)
}
