package sprites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/matthew-beep/assetprep/internal/config"
	"github.com/matthew-beep/assetprep/internal/display"
	"github.com/matthew-beep/assetprep/internal/fsx"
)

// EmptyMessage is printed in text mode when nothing was found.
const EmptyMessage = "No PNG files found or folder doesn't exist."

// dims is the per-file value shared by the JSON and YAML renderers.
type dims struct {
	Width  uint32  `json:"width" yaml:"width"`
	Height uint32  `json:"height" yaml:"height"`
	Frames float64 `json:"frames" yaml:"frames"`
}

// Row is the Parquet record layout, one per sprite sheet.
type Row struct {
	Filename string  `parquet:"filename"`
	Width    uint32  `parquet:"width"`
	Height   uint32  `parquet:"height"`
	Frames   float64 `parquet:"frames"`
}

// WriteManifest renders sheet to w as text, JSON or YAML. Parquet needs a
// file; use Save for it.
func WriteManifest(w io.Writer, sheet *Sheet, format config.ManifestFormat) error {
	switch format {
	case config.FormatText, "":
		return writeText(w, sheet)
	case config.FormatJSON:
		return writeJSON(w, sheet)
	case config.FormatYAML:
		return writeYAML(w, sheet)
	case config.FormatParquet:
		return fmt.Errorf("parquet output needs a file path")
	default:
		return fmt.Errorf("unknown manifest format %q", format)
	}
}

// Save writes the manifest to path atomically in the given format.
func Save(path string, sheet *Sheet, format config.ManifestFormat) error {
	if format == config.FormatParquet {
		return fsx.WriteAtomic(path, func(w io.Writer) error {
			return parquet.Write(w, Rows(sheet))
		})
	}
	return fsx.WriteAtomic(path, func(w io.Writer) error {
		return WriteManifest(w, sheet, format)
	})
}

// Rows flattens sheet into Parquet rows in discovery order.
func Rows(sheet *Sheet) []Row {
	entries := sheet.Entries()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Filename: e.Filename, Width: e.Width, Height: e.Height, Frames: e.Frames}
	}
	return rows
}

// writeText prints one "<name>: {'width': W, 'height': H, 'frames': F}" line
// per entry.
func writeText(w io.Writer, sheet *Sheet) error {
	if sheet.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	for _, e := range sheet.Entries() {
		if _, err := fmt.Fprintf(w, "%s: {'width': %d, 'height': %d, 'frames': %s}\n",
			e.Filename, e.Width, e.Height, display.ReprFloat(e.Frames)); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON emits an object keyed by filename in discovery order.
func writeJSON(w io.Writer, sheet *Sheet) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range sheet.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Filename)
		if err != nil {
			return err
		}
		val, err := json.Marshal(toDims(e))
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// writeYAML emits a mapping keyed by filename. A yaml.Node is built by
// hand because Go maps would lose discovery order.
func writeYAML(w io.Writer, sheet *Sheet) error {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range sheet.Entries() {
		var val yaml.Node
		if err := val.Encode(toDims(e)); err != nil {
			return err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Filename}
		root.Content = append(root.Content, key, &val)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func toDims(e Entry) dims {
	return dims{Width: e.Width, Height: e.Height, Frames: e.Frames}
}
