package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/joshuapare/lioli/bill"
	"github.com/joshuapare/lioli/internal/mmfile"
	"github.com/joshuapare/lioli/tree"
)

var (
	dumpFormat string
	dumpNoDict bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpFormat, "format", "lorth", "Output format: lorth, indented, tree")
	cmd.Flags().BoolVar(&dumpNoDict, "no-dict", false, "Stream was written with the dictionary disabled")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every tree in a BILL stream",
		Long: `The dump command decodes a BILL stream and prints each record.

Files written by the binary log sink carry inline names only; pass --no-dict
for those.

Example:
  liolictl dump alerts.bill
  liolictl dump alerts.bill1700000000000 --no-dict --format tree
  liolictl dump alerts.bill --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

// dumpRecord is the JSON form of one record.
type dumpRecord struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Lorth string `json:"lorth"`
}

func runDump(args []string) error {
	path := args[0]

	render, err := dumpRenderer(dumpFormat)
	if err != nil {
		return err
	}

	printVerbose("Reading stream: %s\n", path)
	m, err := mmfile.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	defer m.Close()

	// Decoded trees own copies of their bytes, so they outlive the mapping.
	trees, err := bill.Decode(m.Bytes(), bill.Options{DisableDictionary: dumpNoDict})
	if err != nil {
		return fmt.Errorf("failed to decode %s after %d record(s): %w", path, len(trees), err)
	}

	if jsonOut {
		records := make([]dumpRecord, 0, len(trees))
		for i, t := range trees {
			records = append(records, dumpRecord{
				Index: i,
				Name:  t.Name(),
				Text:  string(t.Raw()),
				Lorth: t.Lorth(),
			})
		}
		return printJSON(records)
	}

	for _, t := range trees {
		printInfo("%s", render(t))
	}
	printVerbose("%d record(s)\n", len(trees))
	return nil
}

func dumpRenderer(format string) (func(*tree.Tree) string, error) {
	switch format {
	case "lorth", "":
		return (*tree.Tree).Lorth, nil
	case "indented":
		return (*tree.Tree).String, nil
	case "tree":
		return treeDiagram, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want lorth, indented or tree)", format)
	}
}

// treeDiagram draws t with box characters, one leaf per line with its text.
func treeDiagram(t *tree.Tree) string {
	p := treeprint.New()
	addDiagramNode(p, t.Root())
	return p.String()
}

func addDiagramNode(p treeprint.Tree, n tree.NodeView) {
	if n.NumChildren() == 0 {
		p.AddNode(fmt.Sprintf("%s %q", n.Name(), n.Text()))
		return
	}
	branch := p.AddBranch(n.Name())
	for _, c := range n.Children() {
		addDiagramNode(branch, c)
	}
}
