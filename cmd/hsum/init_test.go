package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/hybridsum/internal"
)

func TestInitCmd(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCmd(internal.NewScopeResolverWithHome(t.TempDir()))
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	configPath := filepath.Join(tmpDir, ".hsum", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config.yaml not created")
	}

	if !strings.Contains(out.String(), "Initialized hsum config") {
		t.Errorf("unexpected output: %q", out.String())
	}

	cfg, err := internal.LoadConfig(internal.Scope{DataPath: filepath.Join(tmpDir, ".hsum")})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Summary.Mode != internal.ModeHybrid {
		t.Errorf("expected default mode, got %q", cfg.Summary.Mode)
	}
}

func TestInitCmdAlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	resolver := internal.NewScopeResolverWithHome(t.TempDir())
	first := NewInitCmd(resolver)
	first.SetOut(&bytes.Buffer{})
	if err := first.Execute(); err != nil {
		t.Fatalf("first init: %v", err)
	}

	cmd := NewInitCmd(resolver)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for already initialized")
	}
}

func TestInitCmdGlobal(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()

	cmd := NewInitCmd(internal.NewScopeResolverWithHome(home))
	cmd.SetArgs([]string{"--global"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".hsum", "config.yaml")); err != nil {
		t.Errorf("global config not created: %v", err)
	}
}
