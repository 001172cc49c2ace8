package sprites

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/matthew-beep/assetprep/internal/config"
)

func sampleSheet() *Sheet {
	s := NewSheet()
	s.put(newEntry("hero.png", 128, 64))
	s.put(newEntry("coin.png", 100, 30))
	s.put(newEntry("strip.png", 512, 64))
	return s
}

func TestWriteManifest_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, sampleSheet(), config.FormatText); err != nil {
		t.Fatal(err)
	}
	want := "hero.png: {'width': 128, 'height': 64, 'frames': 2.0}\n" +
		"coin.png: {'width': 100, 'height': 30, 'frames': 3.3333333333333335}\n" +
		"strip.png: {'width': 512, 'height': 64, 'frames': 8.0}\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteManifest_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, NewSheet(), config.FormatText); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != EmptyMessage {
		t.Errorf("got %q", got)
	}
}

func TestWriteManifest_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, sampleSheet(), config.FormatJSON); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	var decoded map[string]struct {
		Width  uint32   `json:"width"`
		Height uint32   `json:"height"`
		Frames float64 `json:"frames"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if h := decoded["hero.png"]; h.Width != 128 || h.Frames != 2 {
		t.Errorf("hero.png = %+v", h)
	}
	if !strings.Contains(out, `"frames": 8`) || strings.Contains(out, "null") {
		t.Errorf("frames not written as numbers:\n%s", out)
	}

	hero := strings.Index(out, "hero.png")
	coin := strings.Index(out, "coin.png")
	strip := strings.Index(out, "strip.png")
	if !(hero < coin && coin < strip) {
		t.Errorf("keys out of discovery order:\n%s", out)
	}
}

func TestWriteManifest_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, NewSheet(), config.FormatJSON); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{}" {
		t.Errorf("got %q", got)
	}
}

func TestWriteManifest_YAMLKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, sampleSheet(), config.FormatYAML); err != nil {
		t.Fatal(err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	root := doc.Content[0]
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	want := []string{"hero.png", "coin.png", "strip.png"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	var decoded map[string]struct {
		Width  uint32  `yaml:"width"`
		Height uint32  `yaml:"height"`
		Frames float64 `yaml:"frames"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["hero.png"].Frames != 2 {
		t.Errorf("hero.png = %+v", decoded["hero.png"])
	}
	if decoded["strip.png"].Frames != 8 {
		t.Errorf("strip.png = %+v", decoded["strip.png"])
	}
}

func TestWriteManifest_ParquetNeedsFile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteManifest(&buf, sampleSheet(), config.FormatParquet); err == nil {
		t.Error("expected error for parquet to a stream")
	}
	if err := WriteManifest(&buf, sampleSheet(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSave_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sprites.parquet")
	if err := Save(path, sampleSheet(), config.FormatParquet); err != nil {
		t.Fatal(err)
	}

	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0] != (Row{Filename: "hero.png", Width: 128, Height: 64, Frames: 2}) {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Filename != "coin.png" || rows[2].Filename != "strip.png" {
		t.Errorf("order = %s, %s", rows[1].Filename, rows[2].Filename)
	}
}

func TestSave_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.txt")
	if err := Save(path, sampleSheet(), config.FormatText); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), "hero.png: {'width': 128") {
		t.Errorf("content = %q", got)
	}
}
