package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/booklore/librarian/internal/logger"
)

// watchDebounce is how long a file must stay quiet before it imports.
// Copies and downloads emit many write events; importing mid-copy would
// hash a half-written file.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and import new files",
	Long: `Watch a directory and import files as they appear or change. Each file
imports only after it has been quiet for a couple of seconds, so partial
copies never get hashed. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importerService == nil {
		return errors.New("importer service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch target must be a directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the tree that exists now; directories created later are added
	// as their create events arrive.
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)
	return watchLoop(cmd.Context(), cmd, watcher, watchDebounce)
}

// watchLoop debounces events per path and imports settled files.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher, debounce time.Duration) error {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	importSettled := func(path string) {
		mu.Lock()
		delete(timers, path)
		mu.Unlock()

		summary, err := importerService.ImportPath(ctx, path)
		if err != nil {
			logger.Warn("Watch import %s: %v", path, err)
			return
		}
		for _, o := range summary.Outcomes {
			cmd.Printf("  %s  %s\n", o.Kind, o.Path)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("Watch add %s: %v", event.Name, err)
					}
				}
				continue
			}

			path := event.Name
			mu.Lock()
			if timer, ok := timers[path]; ok {
				timer.Reset(debounce)
			} else {
				timers[path] = time.AfterFunc(debounce, func() {
					importSettled(path)
				})
			}
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}
