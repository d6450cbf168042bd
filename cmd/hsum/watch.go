package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/4thel00z/hybridsum/internal"
)

const defaultDebounce = 500 * time.Millisecond

// runWatch summarizes target once (or, for a directory, each file as it
// changes) and then again after every debounced batch of writes.
func runWatch(cmd *cobra.Command, a *app, target string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	var (
		ignore *internal.IgnoreMatcher
		wanted func(string) bool
	)
	if info.IsDir() {
		ignore, err = internal.NewIgnoreMatcher(abs)
		if err != nil {
			return fmt.Errorf("read %s: %w", internal.IgnoreFilename, err)
		}
		if err := addWatchDirs(watcher, abs, ignore); err != nil {
			return fmt.Errorf("add watch dirs: %w", err)
		}
		wanted = func(path string) bool { return !ignore.Match(path) }
	} else {
		// Editors often replace the file, so watch its directory.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("add watch dir: %w", err)
		}
		wanted = func(path string) bool { return filepath.Clean(path) == abs }
	}

	tracker := newSummaryTracker()
	run := func(paths []string) {
		for _, p := range paths {
			if err := watchStep(cmd, a, tracker, abs, p); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "summarize %s: %v\n", p, err)
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", abs)
	if !info.IsDir() {
		run([]string{abs})
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]struct{})

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignore != nil && event.Has(fsnotify.Create) && isDir(event.Name) && !ignore.MatchDir(event.Name) {
				watchNewDir(cmd.ErrOrStderr(), watcher, event.Name, ignore)
				continue
			}
			if shouldIgnoreEvent(event, wanted) {
				continue
			}
			if len(pending) == 0 {
				timer.Reset(debounce)
			}
			pending[filepath.Clean(event.Name)] = struct{}{}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			run(paths)
		}
	}
}

func watchStep(cmd *cobra.Command, a *app, tracker *summaryTracker, root, path string) error {
	if !isRegularFile(path) {
		tracker.forget(path)
		return nil
	}

	text, err := a.readDocument(path)
	if err != nil {
		return err
	}
	out, err := summarize(cmd, a, text)
	if errors.Is(err, internal.ErrEmptyDocument) {
		return nil
	}
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	diff, changed := tracker.update(path, out.Final)
	if !changed {
		return nil
	}

	name := path
	if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
		name = rel
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n%s\n", time.Now().Format(time.TimeOnly), name, diff)
	return nil
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, ignore *internal.IgnoreMatcher) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignore.MatchDir(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchNewDir adds a directory created during the watch and reports
// failures to w.
func watchNewDir(w io.Writer, watcher *fsnotify.Watcher, dir string, ignore *internal.IgnoreMatcher) {
	if err := addWatchDirs(watcher, dir, ignore); err != nil {
		fmt.Fprintf(w, "watch %s: %v\n", dir, err)
	}
}

// shouldIgnoreEvent drops events that cannot change a summary and paths
// the watch does not cover.
func shouldIgnoreEvent(event fsnotify.Event, wanted func(string) bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return true
	}
	return !wanted(event.Name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// summaryTracker remembers the last summary per file.
type summaryTracker struct {
	dmp  *diffmatchpatch.DiffMatchPatch
	prev map[string]string
}

func newSummaryTracker() *summaryTracker {
	return &summaryTracker{dmp: diffmatchpatch.New(), prev: make(map[string]string)}
}

// update stores final as the summary of path and returns its rendering
// against the previous one. changed is false when nothing differs.
func (t *summaryTracker) update(path string, final []string) (string, bool) {
	next := strings.Join(final, "\n")
	prev, seen := t.prev[path]
	t.prev[path] = next

	if !seen {
		return next, true
	}
	if prev == next {
		return "", false
	}
	return renderDiff(t.dmp, prev, next), true
}

func (t *summaryTracker) forget(path string) {
	delete(t.prev, path)
}

// renderDiff marks deletions as [-text-] and insertions as {+text+}.
func renderDiff(dmp *diffmatchpatch.DiffMatchPatch, prev, next string) string {
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(prev, next, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
