package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/config"
)

const version = "0.1.0"

var (
	cfg       config.Config
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill compiler",
	Long:  "Quill compiles .ql source files to C++ source text.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.DefaultFile)
		if err != nil {
			return err
		}
		if debugFlag {
			cfg.Log.Debug = true
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug output")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show compiler version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Quill compiler version %s\n", version)
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
