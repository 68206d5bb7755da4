package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/lispedit"
	"github.com/iw2rmb/lispedit/align"
	"github.com/iw2rmb/lispedit/buffer"
)

var alignAt int

var alignCmd = &cobra.Command{
	Use:   "align FILE",
	Short: "Column-align the couple series at a position",
	Long: `Align right-aligns the value column of the couple series whose first
couple starts at --at (a rune offset into the file). Multi-line values
are re-indented so their continuation lines keep their shape.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAlignment(args[0], "align", align.Align)
	},
}

var unalignCmd = &cobra.Command{
	Use:   "unalign FILE",
	Short: "Collapse aligned couples back to single spaces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAlignment(args[0], "unalign", func(buf *buffer.Buffer, start int) error {
			align.Unalign(buf, start)
			return nil
		})
	},
}

func init() {
	alignCmd.Flags().IntVar(&alignAt, "at", 0, "rune offset of the first couple")
	unalignCmd.Flags().IntVar(&alignAt, "at", 0, "rune offset of the first couple")
}

func runAlignment(path, op string, apply func(*buffer.Buffer, int) error) error {
	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}
	before := buf.Text()

	if err := apply(buf, alignAt); err != nil {
		if lispedit.IsUser(err) {
			color.Red("%s: %v", op, err)
			return err
		}
		return err
	}

	changed := buf.Text() != before
	logger.Debug("alignment done",
		zap.String("op", op),
		zap.String("path", path),
		zap.Bool("changed", changed))

	if err := emit(path, buf.Text()); err != nil {
		return err
	}
	if write {
		if changed {
			color.Green("%s: %s updated", op, path)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s already in shape\n", op, path)
		}
	}
	return nil
}

func loadBuffer(path string) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buffer.New(string(data)), nil
}

// emit writes text back to path under --write, and to stdout otherwise.
func emit(path, text string) error {
	if !write {
		_, err := fmt.Print(text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
