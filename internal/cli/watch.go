package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"quill/internal/diagnostics"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Rebuild a Quill source file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(args[0])
	},
}

// watch rebuilds on every write to the target file. Build failures are
// reported and watching continues.
func watch(entryFile string) error {
	abs, err := filepath.Abs(entryFile)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	runBuild := func() {
		if err := build(entryFile); err != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Failure(err.Error()))
		}
	}

	runBuild()
	fmt.Printf("watching %s\n", entryFile)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				runBuild()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, diagnostics.Failure(err.Error()))
		}
	}
}
