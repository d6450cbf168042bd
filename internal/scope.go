package internal

import (
	"os"
	"path/filepath"
)

const dataDirName = ".hsum"

type ScopeType string

const (
	ScopeGlobal  ScopeType = "global"
	ScopeProject ScopeType = "project"
)

type Scope struct {
	Type     ScopeType
	Path     string // working directory root
	DataPath string // .hsum directory path
}

func (s Scope) ConfigPath() string {
	return filepath.Join(s.DataPath, "config.yaml")
}

func (s Scope) EnvPath() string {
	return filepath.Join(s.DataPath, ".env")
}

// PluginPath is where scope-local hsum-* commands live.
func (s Scope) PluginPath() string {
	return filepath.Join(s.DataPath, "plugins")
}

// Exists reports whether the scope has been initialized.
func (s Scope) Exists() bool {
	info, err := os.Stat(s.DataPath)
	return err == nil && info.IsDir()
}

type ScopeResolver struct {
	homeDir string
}

func NewScopeResolver() *ScopeResolver {
	home, _ := os.UserHomeDir()
	return &ScopeResolver{homeDir: home}
}

// NewScopeResolverWithHome roots the global scope at home instead of the
// user's home directory.
func NewScopeResolverWithHome(home string) *ScopeResolver {
	return &ScopeResolver{homeDir: home}
}

func (r *ScopeResolver) Global() Scope {
	return Scope{
		Type:     ScopeGlobal,
		Path:     r.homeDir,
		DataPath: filepath.Join(r.homeDir, dataDirName),
	}
}

func (r *ScopeResolver) Project() (Scope, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return Scope{}, false
	}
	return r.findProjectScope(cwd)
}

// ProjectAt returns the project scope rooted at dir without checking that
// it exists.
func (r *ScopeResolver) ProjectAt(dir string) Scope {
	return Scope{Type: ScopeProject, Path: dir, DataPath: filepath.Join(dir, dataDirName)}
}

func (r *ScopeResolver) findProjectScope(dir string) (Scope, bool) {
	for {
		scope := r.ProjectAt(dir)
		if scope.Exists() && scope.DataPath != r.Global().DataPath {
			return scope, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Scope{}, false
		}
		dir = parent
	}
}

func (r *ScopeResolver) Resolve(explicit string) Scope {
	if explicit == string(ScopeGlobal) {
		return r.Global()
	}
	if scope, ok := r.Project(); ok {
		return scope
	}
	return r.Global()
}

// Cascade lists the scopes to consult, most specific first.
func (r *ScopeResolver) Cascade() []Scope {
	scopes := []Scope{}
	if scope, ok := r.Project(); ok {
		scopes = append(scopes, scope)
	}
	scopes = append(scopes, r.Global())
	return scopes
}

func (r *ScopeResolver) EnvVars(scope Scope, version string) map[string]string {
	bin, _ := os.Executable()
	return map[string]string{
		"HSUM_SCOPE":      string(scope.Type),
		"HSUM_SCOPE_PATH": scope.DataPath,
		"HSUM_ROOT":       scope.Path,
		"HSUM_CONFIG":     scope.ConfigPath(),
		"HSUM_VERSION":    version,
		"HSUM_BIN":        bin,
	}
}
