package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/compiler"
	"quill/internal/diagnostics"
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a Quill source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := build(args[0]); err != nil {
			return err
		}
		return nil
	},
}

// build compiles one file and writes the target text next to it under the
// configured output directory. Persisting the emitted buffer happens here,
// outside the compiler core.
func build(entryFile string) error {
	result := compiler.Compile(compiler.Options{
		EntryFile:         entryFile,
		Debug:             cfg.Log.Debug,
		RecoverStatements: cfg.Build.RecoverStatements,
		EmitOnError:       cfg.Build.EmitOnError,
		Indent:            cfg.Emitter.Indent,
	})

	if result.Diagnostics != "" {
		fmt.Fprint(os.Stderr, result.Diagnostics)
	}
	if !result.Success && result.Output == "" {
		return fmt.Errorf("build failed with %d error(s)", result.Errors)
	}

	outPath := outputPath(entryFile)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(result.Output), 0o644); err != nil {
		return err
	}

	fmt.Println(diagnostics.Success(fmt.Sprintf("✓ %s -> %s", entryFile, outPath)))
	return nil
}

func outputPath(entryFile string) string {
	base := filepath.Base(entryFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.Build.OutputDir, name+".cpp")
}
