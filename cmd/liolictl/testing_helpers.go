package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lioli/bill"
	"github.com/joshuapare/lioli/tree"
)

// resetFlags puts the package-level flag variables back to their defaults.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	dumpFormat, dumpNoDict = "lorth", false
	statsNoDict = false
	logFile, logMaxLines, logRotate, logSync = "", 0, false, false
}

// writeStream encodes trees as a complete BILL stream into a temp file.
func writeStream(t *testing.T, opts bill.Options, trees ...*tree.Tree) string {
	t.Helper()
	s, err := bill.NewStream(opts)
	require.NoError(t, err)
	s.WriteHeader()
	for _, tr := range trees {
		require.NoError(t, s.Write(tr))
	}
	s.WriteTerminator()

	path := filepath.Join(t.TempDir(), "stream.bill")
	require.NoError(t, os.WriteFile(path, s.Bytes(), 0644))
	return path
}

func sampleTrees() []*tree.Tree {
	alert := func(msg, principal string) *tree.Tree {
		return tree.MustNew(tree.RootName).
			AppendTree(tree.MustNew("alert").AppendText(msg)).
			AppendTree(tree.MustNew("principal").AppendText(principal))
	}
	return []*tree.Tree{
		alert("port scan", "10.0.0.1"),
		alert("ssh brute force", "10.0.0.7"),
	}
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	require.NoError(t, json.Unmarshal([]byte(output), &result), "invalid JSON output:\n%s", output)
}
