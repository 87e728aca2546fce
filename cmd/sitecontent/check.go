package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	site "github.com/littlemoon-zh/littlemoon-zh.github.io"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// ErrCheckFailed is returned when at least one document is invalid or fails
// to render.
var ErrCheckFailed = errors.New("content check failed")

const defaultDebounce = 200 * time.Millisecond

func newCheckCommand(a *app) *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate and render every document",
		Long: `check parses every note and demo, reports invalid frontmatter and renders
each visible document. It exits non-zero when anything fails. With --watch it
re-runs whenever a document under the content root changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			svc := a.module.Content()

			if !watch {
				return runCheck(ctx, svc, out)
			}

			root := a.config.Content.RootDir
			kinds := make([]string, 0, len(site.Kinds()))
			for _, kind := range site.Kinds() {
				kinds = append(kinds, kind.String())
			}
			watcher, err := newContentWatcher(root, kinds, debounce, a.logger)
			if err != nil {
				return err
			}
			defer watcher.Close()

			report := func() {
				if err := runCheck(ctx, svc, out); err != nil {
					a.logger.Warn("cli.check.failed", "error", err.Error())
				}
			}
			report()
			fmt.Fprintf(out, "watching %s for changes\n", root)
			return watcher.Run(ctx, report)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the check when documents change")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before a re-run in watch mode")
	return cmd
}

// runCheck scans and renders both collections, printing one line per problem
// and a summary per collection.
func runCheck(ctx context.Context, svc site.ContentService, out io.Writer) error {
	failed := false
	for _, kind := range site.Kinds() {
		report, err := svc.Scan(ctx, kind)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", kind, err)
			failed = true
			continue
		}
		for _, skipped := range report.Skipped {
			fmt.Fprintf(out, "%s/%s: %v\n", kind, skipped.FileName, skipped.Err)
		}
		if len(report.Skipped) > 0 {
			failed = true
		}

		rendered := 0
		docs, err := svc.RenderAll(ctx, kind)
		if err != nil {
			fmt.Fprintf(out, "%s: render: %v\n", kind, err)
			failed = true
		} else {
			rendered = len(docs)
		}

		fmt.Fprintf(out, "%s: %d rendered, %d hidden, %d invalid\n",
			kind, rendered, report.Hidden, len(report.Skipped))
	}

	if failed {
		return ErrCheckFailed
	}
	return nil
}

// contentWatcher reports debounced changes to document files under root and
// its collection directories. Collection directories created after start are
// picked up as they appear.
type contentWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	kindDirs map[string]struct{}
	debounce time.Duration
	logger   interfaces.Logger
}

func newContentWatcher(root string, kinds []string, debounce time.Duration, logger interfaces.Logger) (*contentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	root = filepath.Clean(root)
	kindDirs := make(map[string]struct{}, len(kinds))
	dirs := []string{root}
	for _, kind := range kinds {
		dir := filepath.Join(root, kind)
		kindDirs[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	watched := 0
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched++
	}
	if watched == 0 {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch: no content directory found in %v", dirs)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &contentWatcher{
		watcher:  watcher,
		root:     root,
		kindDirs: kindDirs,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Run calls onChange once per burst of document events until ctx is done.
func (w *contentWatcher) Run(ctx context.Context, onChange func()) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.addKindDir(event) {
				fire = time.After(w.debounce)
				continue
			}
			if !isDocumentEvent(event) {
				continue
			}
			w.logger.Debug("cli.watch.event", "file", event.Name, "op", event.Op.String())
			fire = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("cli.watch.error", "error", err.Error())
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// addKindDir starts watching a collection directory created after start.
func (w *contentWatcher) addKindDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	dir := filepath.Clean(event.Name)
	if _, ok := w.kindDirs[dir]; !ok {
		return false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return false
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error("cli.watch.add_failed", "dir", dir, "error", err.Error())
		return false
	}
	w.logger.Info("cli.watch.added", "dir", dir)
	return true
}

func (w *contentWatcher) Close() error {
	return w.watcher.Close()
}

func isDocumentEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(storage.Extensions, filepath.Ext(event.Name))
}
