// Command assetprep prepares static web assets: it reports PNG sprite sheet
// dimensions and frame counts, and batch-optimizes background videos with
// ffmpeg (web-friendly MP4 plus a first-frame poster).
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
