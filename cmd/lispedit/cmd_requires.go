package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/lispedit/buffer"
	"github.com/iw2rmb/lispedit/requires"
	"github.com/iw2rmb/lispedit/rewriter"
)

var requiresYes bool

var requiresCmd = &cobra.Command{
	Use:   "requires",
	Short: "Inspect and rewrite top-level require forms",
}

var requiresFindCmd = &cobra.Command{
	Use:   "find FILE",
	Short: "List the top-level require forms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := loadBuffer(args[0])
		if err != nil {
			return err
		}
		forms, err := requires.Find(buf)
		if err != nil {
			return err
		}
		if len(forms) == 0 {
			fmt.Fprintln(os.Stderr, "no top-level requires found")
			return nil
		}
		for _, f := range forms {
			fmt.Println(f.String())
		}
		return nil
	},
}

var requiresTidyCmd = &cobra.Command{
	Use:   "tidy FILE",
	Short: "Merge and sort the require forms into one tidy block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd.Context(), args[0], "tidy",
			func(ctx context.Context, buf *buffer.Buffer, c rewriter.Client, path string) error {
				return rewriter.TidyBuffer(ctx, buf, c)
			})
	},
}

var requiresTrimCmd = &cobra.Command{
	Use:   "trim FILE",
	Short: "Rewrite the requires to just what the program uses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd.Context(), args[0], "trim", rewriter.TrimBuffer)
	},
}

var requiresBaseCmd = &cobra.Command{
	Use:   "base FILE",
	Short: "Rewrite the requires for a racket/base program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd.Context(), args[0], "base", rewriter.BaseBuffer)
	},
}

func init() {
	requiresCmd.PersistentFlags().BoolVarP(&requiresYes, "yes", "y", false,
		"skip the submodule confirmation prompt")
	requiresCmd.AddCommand(requiresFindCmd)
	requiresCmd.AddCommand(requiresTidyCmd)
	requiresCmd.AddCommand(requiresTrimCmd)
	requiresCmd.AddCommand(requiresBaseCmd)
}

func runRewrite(ctx context.Context, path, op string,
	apply func(context.Context, *buffer.Buffer, rewriter.Client, string) error) error {

	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}

	if requires.HasSubmoduleForms(buf) && !requiresYes {
		color.Yellow("%s contains module+/module* forms; requires used only inside them may be removed.", path)
		if !confirm("rewrite anyway?") {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
	}

	c, err := rewriter.Dial(ctx, cfg.RewriterURL, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.RewriterTimeout())
	defer cancel()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := apply(ctx, buf, c, abs); err != nil {
		return err
	}

	logger.Debug("requires rewrite done",
		zap.String("op", op),
		zap.String("path", path))

	if err := emit(path, buf.Text()); err != nil {
		return err
	}
	if write {
		color.Green("%s: %s updated", op, path)
	}
	return nil
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
