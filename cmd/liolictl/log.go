package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lioli/sink"
)

var (
	logFile     string
	logMaxLines int
	logRotate   bool
	logSync     bool
)

func init() {
	cmd := newLogCmd()
	cmd.Flags().StringVar(&logFile, "file", "", "Base log file name (required)")
	cmd.Flags().IntVar(&logMaxLines, "max-lines", sink.DefaultMaxLines, "Lines per file when rotating")
	cmd.Flags().BoolVar(&logRotate, "rotate", false, "Roll over by line count and timestamp file names")
	cmd.Flags().BoolVar(&logSync, "sync", false, "Sync to stable storage on every flush")
	_ = cmd.MarkFlagRequired("file")
	rootCmd.AddCommand(cmd)
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log --file <base>",
		Short: "Write stdin lines to a rotating log file",
		Long: `The log command copies each line read from stdin into a rotating log
file and prints the sink counters when stdin ends.

Example:
  tail -f events | liolictl log --file /var/log/flow.txt --rotate
  liolictl log --file out.txt --rotate --max-lines 1000 < lines.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.InOrStdin())
		},
	}
	return cmd
}

// logReport is what the log command prints when it finishes.
type logReport struct {
	sink.Stats
	Paths []string `json:"paths"`
}

func runLog(in io.Reader) error {
	if logFile == "" {
		return fmt.Errorf("--file is required")
	}

	f := sink.NewRotatingFile(sink.RotatingOptions{
		Rotate:   logRotate,
		MaxLines: logMaxLines,
		Sync:     logSync,
	})
	f.SetFileName(logFile)

	read := 0
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		f.LogLine(sc.Text())
		read++
	}
	scanErr := sc.Err()
	if err := f.Close(); err != nil {
		return err
	}
	if scanErr != nil {
		return fmt.Errorf("failed to read input: %w", scanErr)
	}

	report := logReport{Stats: f.Stats(), Paths: f.Paths()}
	if read > 0 && report.Files == 0 {
		return fmt.Errorf("failed to open log file %s", logFile)
	}
	if jsonOut {
		return printJSON(report)
	}
	printInfo("lines: %d\n", report.Lines)
	printInfo("files: %d\n", report.Files)
	for _, p := range report.Paths {
		printVerbose("  %s\n", p)
	}
	return nil
}
