package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iw2rmb/lispedit"
)

var (
	verbose    bool
	configPath string
	write      bool

	cfg    Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lispedit",
	Short: "Structural transforms for Lisp-family source files",
	Long: `lispedit rewrites Lisp-family source structurally: it aligns binding
couples into columns and collects, merges and rewrites top-level require
forms. Navigation is by balanced delimiters, never by regular expressions,
so strings, comments and nested brackets are always honored.`,
	Version:       lispedit.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/lispedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&write, "write", "w", false, "write the result back to the file instead of stdout")

	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(unalignCmd)
	rootCmd.AddCommand(requiresCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lispedit:", err)
		os.Exit(1)
	}
}
