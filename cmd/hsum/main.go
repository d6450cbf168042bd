package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/4thel00z/hybridsum/internal"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	if tryExternalCommand(ctx) {
		return
	}

	rootCmd := NewRootCmd(version, newApp())
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

func tryExternalCommand(ctx context.Context) bool {
	if len(os.Args) < 2 {
		return false
	}

	cmd := os.Args[1]
	if cmd == "" || cmd[0] == '-' {
		return false
	}

	resolver := internal.NewScopeResolver()
	if _, err := findExternal(resolver, cmd); err != nil {
		return false
	}

	if err := executeExternal(ctx, resolver, cmd, os.Args[2:], version); err != nil {
		fmt.Fprintf(os.Stderr, "hsum %s: %v\n", cmd, err)
		os.Exit(1)
	}

	return true
}

type app struct {
	resolver *internal.ScopeResolver
	// factory builds the abstractive summarizer. Nil means the configured
	// fantasy provider.
	factory internal.SummarizerFactory
	probe   internal.ProviderFactory
	logger  *zap.Logger
	stdin   io.Reader
	getenv  func(string) string
}

func newApp() *app {
	return newAppWithResolver(internal.NewScopeResolver())
}

func newAppWithResolver(resolver *internal.ScopeResolver) *app {
	return &app{
		resolver: resolver,
		logger:   zap.NewNop(),
		stdin:    os.Stdin,
		getenv:   os.Getenv,
	}
}

// setup loads dotenv files and builds the logger from the persistent flags.
func (a *app) setup(cmd *cobra.Command) error {
	scopeHint, _ := cmd.Flags().GetString("scope")
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")

	scope := a.resolver.Resolve(scopeHint)
	if err := internal.LoadEnvFiles(".env", scope.EnvPath(), a.resolver.Global().EnvPath()); err != nil {
		return err
	}

	logger, err := internal.NewLogger(level, jsonLogs)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) loader() *internal.LoadConfigUseCase {
	return internal.NewLoadConfigUseCase(a.resolver).WithGetenv(a.getenv)
}

func (a *app) summarizeUC() *internal.SummarizeUseCase {
	return internal.NewSummarizeUseCase(a.loader(), a.factory, a.logger)
}

func (a *app) rankUC() *internal.RankUseCase {
	return internal.NewRankUseCase(a.loader())
}

func (a *app) mergeUC() *internal.MergeUseCase {
	return internal.NewMergeUseCase(a.loader())
}

func (a *app) providerTestUC() *internal.ProviderTestUseCase {
	uc := internal.NewProviderTestUseCase(a.resolver)
	if a.probe != nil {
		uc = uc.WithFactory(a.probe)
	}
	return uc
}

// document returns a source for name and the name to read from it.
// Files are opened through a filesystem rooted at their directory.
func (a *app) document(name string) (*internal.DocumentSource, string, error) {
	if name == "" || name == internal.StdinName {
		return internal.NewDocumentSourceFS(nil, a.stdin), internal.StdinName, nil
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", name, err)
	}
	return internal.NewDocumentSourceFS(osfs.New(filepath.Dir(abs)), a.stdin), filepath.Base(abs), nil
}

func (a *app) readDocument(name string) (string, error) {
	src, base, err := a.document(name)
	if err != nil {
		return "", err
	}
	return src.Read(base)
}
