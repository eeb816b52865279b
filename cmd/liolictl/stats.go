package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lioli/bill"
	"github.com/joshuapare/lioli/tree"
)

var statsNoDict bool

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&statsNoDict, "no-dict", false, "Stream was written with the dictionary disabled")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show statistics for a BILL stream",
		Long: `The stats command reads a BILL stream and reports record and node
counts, node name usage and the dictionary left at the end of the stream.

Example:
  liolictl stats alerts.bill
  liolictl stats alerts.bill --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

// StreamStats summarises one stream.
type StreamStats struct {
	File       string         `json:"file"`
	Bytes      int64          `json:"bytes"`
	Records    int            `json:"records"`
	Nodes      int            `json:"nodes"`
	MaxDepth   int            `json:"max_depth"`
	MaxText    int            `json:"max_text"`
	Names      map[string]int `json:"names"`
	Dictionary []string       `json:"dictionary"`
}

func runStats(args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	stats, err := collectStats(bufio.NewReader(f), bill.Options{DisableDictionary: statsNoDict})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	stats.File = path
	stats.Bytes = info.Size()

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("Stream: %s\n", stats.File)
	printInfo("  Size: %d bytes\n", stats.Bytes)
	printInfo("  Records: %d\n", stats.Records)
	printInfo("  Nodes: %d\n", stats.Nodes)
	printInfo("  Max depth: %d\n", stats.MaxDepth)
	printInfo("  Longest record text: %d bytes\n", stats.MaxText)

	if len(stats.Names) > 0 {
		printInfo("\nNode names:\n")
		names := make([]string, 0, len(stats.Names))
		for n := range stats.Names {
			names = append(names, n)
		}
		sort.Slice(names, func(i, j int) bool {
			if stats.Names[names[i]] != stats.Names[names[j]] {
				return stats.Names[names[i]] > stats.Names[names[j]]
			}
			return names[i] < names[j]
		})
		for _, n := range names {
			printInfo("  %-20s %d\n", n, stats.Names[n])
		}
	}
	if len(stats.Dictionary) > 0 {
		printInfo("\nDictionary (%d entries):\n", len(stats.Dictionary))
		for i, n := range stats.Dictionary {
			printInfo("  %2d %s\n", i, n)
		}
	}
	return nil
}

func collectStats(r io.Reader, opts bill.Options) (StreamStats, error) {
	stats := StreamStats{Names: make(map[string]int)}

	dec, err := bill.NewDecoder(r, opts)
	if err != nil {
		return stats, err
	}
	if err := dec.ReadHeader(); err != nil {
		return stats, err
	}

	for {
		t, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		stats.Records++
		stats.MaxText = max(stats.MaxText, t.Len())
		t.Root().Walk(func(n tree.NodeView, depth int) bool {
			stats.Nodes++
			stats.Names[n.Name()]++
			stats.MaxDepth = max(stats.MaxDepth, depth+1)
			return true
		})
	}
	stats.Dictionary = dec.DictNames()
	return stats, nil
}
