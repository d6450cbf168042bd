package internal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFantasyProviderMissingKey(t *testing.T) {
	_, err := NewFantasyProvider(context.Background(), FantasyConfig{Provider: ProviderOpenAI, Model: "gpt-4o-mini"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNewFantasyProviderUnsupported(t *testing.T) {
	_, err := NewFantasyProvider(context.Background(), FantasyConfig{Provider: "metis-native", APIKey: "sk", Model: "m"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestSummaryPrompt(t *testing.T) {
	prompt := SummaryPrompt("Some text.", 3)
	assert.Contains(t, prompt, "about 3 sentences")
	assert.Contains(t, prompt, "avoid redundancy")
	assert.Contains(t, prompt, "TEXT:\nSome text.")

	assert.Contains(t, SummaryPrompt("x", 0), "about 5 sentences")
}
