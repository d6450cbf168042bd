package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   \n\t", want: nil},
		{name: "no terminal punctuation", input: "No terminal punctuation", want: []string{"No terminal punctuation"}},
		{name: "duplicates kept", input: "X. X. Y. Z.", want: []string{"X", "X", "Y", "Z"}},
		{
			name:  "newlines",
			input: "First line\nSecond line\r\n\r\nThird",
			want:  []string{"First line", "Second line", "Third"},
		},
		{name: "punctuation runs", input: "Wait!!! Really?", want: []string{"Wait", "Really"}},
		{name: "semicolon", input: "one; two", want: []string{"one", "two"}},
		{
			name:  "arabic punctuation",
			input: "چرا؟ چون باران است؛ بله",
			want:  []string{"چرا", "چون باران است", "بله"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitSentences(tt.input))
		})
	}
}

func TestNewSentences(t *testing.T) {
	t.Parallel()

	got := NewSentences([]string{"abc", "پزشکی"})
	require.Len(t, got, 2)
	assert.Equal(t, Sentence{Index: 0, Text: "abc", Length: 3}, got[0])
	assert.Equal(t, Sentence{Index: 1, Text: "پزشکی", Length: 5}, got[1])
	assert.Empty(t, NewSentences(nil))
}

func TestNewSplitter(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"", "heuristic", " Heuristic "} {
		split, err := NewSplitter(mode)
		require.NoError(t, err, mode)
		assert.Equal(t, []string{"a b", "c d"}, split("a b. c d."))
	}

	_, err := NewSplitter("bogus")
	assert.ErrorIs(t, err, ErrUnknownSplitter)
}

func TestPunktSplitter(t *testing.T) {
	t.Parallel()

	split, err := NewSplitter(SplitterPunkt)
	require.NoError(t, err)

	got := split("The cat sat on the mat. The dog ran away.")
	require.Len(t, got, 2)
	assert.Equal(t, "The cat sat on the mat.", got[0])

	lines := split("Title line\nThe body follows here.")
	assert.Equal(t, []string{"Title line", "The body follows here."}, lines)

	assert.Empty(t, split("   "))
}

func FuzzSplitSentences(f *testing.F) {
	f.Add("X. X. Y. Z.")
	f.Add("چرا؟ چون باران است؛ بله")
	f.Add("")
	f.Add("\r\n\r\n")
	f.Add("\xff.")

	f.Fuzz(func(t *testing.T, text string) {
		got := SplitSentences(text)
		assert.Equal(t, got, SplitSentences(text))
		for _, s := range got {
			if s == "" || s != strings.TrimSpace(s) {
				t.Fatalf("untrimmed or empty sentence %q from %q", s, text)
			}
		}
	})
}
