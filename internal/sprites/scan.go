package sprites

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matthew-beep/assetprep/internal/fsx"
	"github.com/matthew-beep/assetprep/internal/pnghdr"
)

// Logger is the subset of logging.Logger the scanner needs.
type Logger interface {
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// ResolveFolder joins folder onto base unless folder is already absolute.
// base is the tool's own location, never the working directory, so a scan
// gives the same answer wherever it is started from.
func ResolveFolder(base, folder string) string {
	if filepath.IsAbs(folder) {
		return filepath.Clean(folder)
	}
	return filepath.Join(base, folder)
}

// ScanFolder resolves folder against base and scans it.
func ScanFolder(base, folder string, log Logger) *Sheet {
	dir := ResolveFolder(base, folder)
	log.Debug("Scanning %s", dir)
	return Scan(dir, log)
}

// errZeroHeight rejects a header whose frame ratio would be undefined.
var errZeroHeight = errors.New("image height is 0")

// Scan reads the header of every *.png (case-insensitive) directly inside
// dir. Subdirectories are not entered. A missing directory yields an empty
// Sheet; a file that fails to parse or has zero height is logged and left
// out. Entries keep the order the directory returns them in.
func Scan(dir string, log Logger) *Sheet {
	sheet := NewSheet()

	ok, err := fsx.IsDir(dir)
	if err != nil {
		log.Warn("Cannot access folder %s: %v", dir, err)
		return sheet
	}
	if !ok {
		log.Warn("Folder not found: %s", dir)
		return sheet
	}

	f, err := os.Open(dir)
	if err != nil {
		log.Warn("Cannot access folder %s: %v", dir, err)
		return sheet
	}
	defer f.Close()

	// Directory order, unsorted. ReadDir may return the entries it got
	// before failing.
	entries, err := f.ReadDir(-1)
	if err != nil {
		log.Error("Cannot list folder %s: %v", dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isPNGName(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if !isCandidate(e, path) {
			log.Debug("Skipping %s: not a regular file", name)
			continue
		}

		h, err := pnghdr.ReadFile(path)
		if err != nil {
			log.Error("Error reading %s: %v", name, err)
			continue
		}
		if h.Height == 0 {
			log.Error("Error reading %s: %v", name, errZeroHeight)
			continue
		}
		sheet.put(newEntry(name, h.Width, h.Height))
	}
	return sheet
}

func isPNGName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".png")
}

// isCandidate accepts regular files and symlinks that do not point at a
// directory. Pipes and devices are skipped since opening them can block.
func isCandidate(e fs.DirEntry, path string) bool {
	t := e.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		// Dangling link: let the header reader report it.
		return true
	}
	return fi.Mode().IsRegular()
}
