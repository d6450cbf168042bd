package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/4thel00z/hybridsum/internal"
)

const externalPrefix = "hsum-"

// plugin is an hsum-* executable and the scope it was installed into.
// Plugins found on PATH carry the resolved scope.
type plugin struct {
	name  string
	path  string
	scope internal.Scope
}

type pluginDir struct {
	dir   string
	scope internal.Scope
}

// pluginDirs lists the scope plugin directories, most specific first,
// followed by PATH.
func pluginDirs(resolver *internal.ScopeResolver) []pluginDir {
	var dirs []pluginDir
	for _, scope := range resolver.Cascade() {
		dirs = append(dirs, pluginDir{dir: scope.PluginPath(), scope: scope})
	}

	resolved := resolver.Resolve("")
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		dirs = append(dirs, pluginDir{dir: dir, scope: resolved})
	}
	return dirs
}

func findExternal(resolver *internal.ScopeResolver, name string) (plugin, error) {
	binary := externalPrefix + name
	for _, d := range pluginDirs(resolver) {
		path := filepath.Join(d.dir, binary)
		if isExecutable(path) {
			return plugin{name: name, path: path, scope: d.scope}, nil
		}
	}
	return plugin{}, fmt.Errorf("unknown command %q: %s not found in scope plugins or PATH", name, binary)
}

func listExternalCommands(resolver *internal.ScopeResolver) []string {
	var commands []string
	seen := make(map[string]bool)

	for _, d := range pluginDirs(resolver) {
		entries, err := os.ReadDir(d.dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name, ok := strings.CutPrefix(entry.Name(), externalPrefix)
			if !ok || name == "" || seen[name] || entry.IsDir() {
				continue
			}
			if !isExecutable(filepath.Join(d.dir, entry.Name())) {
				continue
			}
			seen[name] = true
			commands = append(commands, name)
		}
	}
	return commands
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0
}

func executeExternal(ctx context.Context, resolver *internal.ScopeResolver, name string, args []string, version string) error {
	p, err := findExternal(resolver, name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Env = buildExternalEnv(resolver, p.scope, version)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// buildExternalEnv exports scope to the plugin.
func buildExternalEnv(resolver *internal.ScopeResolver, scope internal.Scope, version string) []string {
	vars := resolver.EnvVars(scope, version)

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}
