//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runCLI invokes the built knowledge-map binary with the given stage arguments.
func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Pipeline runs the offline pipeline stages in order: clean, extract, map,
// and index store. Fetch and notes need network access and run separately.
func Pipeline() error {
	mg.Deps(Build)

	for _, stage := range [][]string{
		{"clean"},
		{"extract"},
		{"map"},
		{"index", "store"},
	} {
		fmt.Printf("==> knowledge-map %v\n", stage)
		if err := runCLI(stage...); err != nil {
			return fmt.Errorf("stage %v: %w", stage, err)
		}
	}
	return nil
}

// Fetch downloads transcripts for the URLs listed in video-urls.txt.
func Fetch() error {
	mg.Deps(Build)
	return runCLI("fetch", "--file", "video-urls.txt")
}

// Notes generates study notes from the current knowledge map.
func Notes() error {
	mg.Deps(Build)
	return runCLI("notes")
}
