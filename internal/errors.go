package internal

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials  = errors.New("missing provider credentials")
	ErrUnknownProvider     = errors.New("unknown provider")
	ErrUnsupportedProvider = errors.New("unsupported provider type")
	ErrNoSummarizer        = errors.New("no abstractive summarizer configured")
	ErrEmptyDocument       = errors.New("empty document")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrDocumentTooLarge    = errors.New("document too large")
)

// TransportError wraps a failure talking to an LLM provider. Only
// transport errors are retried.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
