package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// MaxDocumentBytes caps the size of a single input document.
const MaxDocumentBytes = 1 << 20

// StdinName selects standard input as the document source.
const StdinName = "-"

// DocumentSource reads documents from a filesystem or from stdin.
type DocumentSource struct {
	fs    billy.Filesystem
	stdin io.Reader
}

// NewDocumentSource reads paths relative to root.
func NewDocumentSource(root string) *DocumentSource {
	return &DocumentSource{fs: osfs.New(root), stdin: os.Stdin}
}

// NewDocumentSourceFS reads from fs and uses stdin for "-".
func NewDocumentSourceFS(fs billy.Filesystem, stdin io.Reader) *DocumentSource {
	return &DocumentSource{fs: fs, stdin: stdin}
}

// Read returns the document at name. "-" reads stdin.
func (s *DocumentSource) Read(name string) (string, error) {
	if name == StdinName {
		if s.stdin == nil {
			return "", fmt.Errorf("read stdin: no input attached")
		}
		return readCapped(s.stdin, "stdin")
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	return readCapped(f, name)
}

// Lines returns the non-blank lines of the document at name.
func (s *DocumentSource) Lines(name string) ([]string, error) {
	text, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func readCapped(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxDocumentBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrDocumentTooLarge, name, MaxDocumentBytes)
	}
	return string(data), nil
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
