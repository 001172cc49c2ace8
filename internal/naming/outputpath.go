// Package naming maps an input video to its optimized and poster output
// paths and arbitrates between inputs that would write the same outputs.
package naming

import (
	"path/filepath"
	"strings"
)

// PosterSuffix is appended to the input stem to name the poster image.
const PosterSuffix = "_first_frame.jpg"

// Outputs holds the two files produced for one input video.
type Outputs struct {
	Stem   string
	Video  string // <root>/<optimizedDir>/<stem>.mp4
	Poster string // <root>/<postersDir>/<stem>_first_frame.jpg
}

// Stem returns the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPaths builds the output locations for input.
//
//	Video:  <outRoot>/<optimizedDir>/<stem>.mp4
//	Poster: <outRoot>/<postersDir>/<stem>_first_frame.jpg
func OutputPaths(input, outRoot, optimizedDir, postersDir string) Outputs {
	stem := Stem(input)
	return Outputs{
		Stem:   stem,
		Video:  filepath.Join(outRoot, optimizedDir, stem+".mp4"),
		Poster: filepath.Join(outRoot, postersDir, stem+PosterSuffix),
	}
}
